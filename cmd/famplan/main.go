package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"

	"github.com/famplan/planner/internal/calculation"
	"github.com/famplan/planner/internal/config"
	"github.com/famplan/planner/internal/output"
	"github.com/famplan/planner/internal/server"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "famplan",
		Short:   "Family finance projection engine",
		Version: version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(simulateCmd(), serveCmd(), exampleCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func simulateCmd() *cobra.Command {
	var (
		inputFile string
		format    string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a scenario file and print the projection",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := config.NewInputParser().LoadFromFile(inputFile)
			if err != nil {
				return err
			}

			engine := calculation.NewEngine()
			if verbose {
				engine.SetLogger(stderrLogger{})
			}

			results, err := engine.RunSimulation(file.Params(), file.Snapshot())
			if err != nil {
				return err
			}

			formatter, err := output.ByName(format)
			if err != nil {
				return err
			}
			rendered, err := formatter.Format(results)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(rendered)
			return err
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "scenario.yaml", "scenario YAML file")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format: console, csv or json")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log engine internals to stderr")
	return cmd
}

func serveCmd() *cobra.Command {
	var (
		port    int
		cache   bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the engine over HTTP (POST /simulate)",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := calculation.NewEngine()
			if cache {
				engine.Cache = calculation.NewResultCache()
			}
			if verbose {
				engine.SetLogger(stderrLogger{})
			}

			srv := server.New(engine)
			addr := fmt.Sprintf(":%d", port)
			log.Printf("famplan listening on %s", addr)
			return fasthttp.ListenAndServe(addr, srv.Handler)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "listen port")
	cmd.Flags().BoolVar(&cache, "cache", true, "memoize identical simulation requests")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log engine internals to stderr")
	return cmd
}

func exampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print a starter scenario file",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.ExampleScenario)
			return err
		},
	}
}

// stderrLogger adapts the standard logger to the engine's Logger interface.
type stderrLogger struct{}

func (stderrLogger) Debugf(format string, args ...any) { log.Printf("DEBUG "+format, args...) }
func (stderrLogger) Infof(format string, args ...any)  { log.Printf("INFO  "+format, args...) }
func (stderrLogger) Warnf(format string, args ...any)  { log.Printf("WARN  "+format, args...) }
func (stderrLogger) Errorf(format string, args ...any) { log.Printf("ERROR "+format, args...) }
