package server

import (
	"errors"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/famplan/planner/internal/calculation"
	"github.com/famplan/planner/internal/domain"
)

// Server exposes the projection engine over HTTP. The engine itself stays a
// pure function; the server only decodes snapshots, runs it and encodes the
// results.
type Server struct {
	engine *calculation.Engine
}

// New creates a server around an engine.
func New(engine *calculation.Engine) *Server {
	return &Server{engine: engine}
}

// SimulateRequest is the POST /simulate payload: the same scenario plus
// snapshot the Go API takes.
type SimulateRequest struct {
	Params   domain.SimulationParams `json:"params"`
	Snapshot domain.Snapshot         `json:"snapshot"`
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Handler is the fasthttp request handler.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	switch {
	case string(ctx.Path()) == "/healthz":
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	case string(ctx.Path()) == "/simulate" && ctx.IsPost():
		s.handleSimulate(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

func (s *Server) handleSimulate(ctx *fasthttp.RequestCtx) {
	var req SimulateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	results, err := s.engine.RunSimulation(req.Params, &req.Snapshot)
	if err != nil {
		var invalid *calculation.InvalidParameterError
		if errors.As(err, &invalid) {
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}

	ctx.SetContentType("application/json")
	body, err := json.Marshal(results)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetBody(body)
}
