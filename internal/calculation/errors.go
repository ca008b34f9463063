package calculation

import (
	"fmt"
)

// InvalidParameterError reports an input that fails validation. The run
// never starts: no partial timeline is ever returned alongside one.
type InvalidParameterError struct {
	Field  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Reason)
}

func invalidParam(field, format string, args ...any) error {
	return &InvalidParameterError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
