package output

import (
	"fmt"

	"github.com/famplan/planner/internal/domain"
)

// Formatter renders finished simulation results for one output target.
type Formatter interface {
	Name() string
	Format(results *domain.SimulationResults) ([]byte, error)
}

// ByName returns the formatter registered under the given name.
func ByName(name string) (Formatter, error) {
	switch name {
	case "console", "":
		return ConsoleFormatter{}, nil
	case "csv":
		return CSVFormatter{}, nil
	case "json":
		return JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want console, csv or json)", name)
	}
}
