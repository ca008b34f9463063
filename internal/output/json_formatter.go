package output

import (
	"github.com/goccy/go-json"

	"github.com/famplan/planner/internal/domain"
)

// JSONFormatter serializes the full results as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.SimulationResults) ([]byte, error) {
	return json.MarshalIndent(results, "", "  ")
}
