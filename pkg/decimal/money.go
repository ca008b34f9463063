package decimal

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Money is a monetary amount or rate with exact decimal arithmetic and
// YAML scalar support: it accepts bare numbers and quoted strings alike, so
// scenario files never round-trip through binary floats.
type Money struct {
	decimal.Decimal
}

// New creates a Money from a decimal.
func New(d decimal.Decimal) Money {
	return Money{d}
}

// NewFromString parses a Money from its decimal text form.
func NewFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Zero returns a zero amount.
func Zero() Money {
	return Money{decimal.Zero}
}

// UnmarshalYAML parses any YAML scalar through the decimal parser.
func (m *Money) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("cannot parse %s node as a decimal amount", value.Tag)
	}
	d, err := decimal.NewFromString(value.Value)
	if err != nil {
		return fmt.Errorf("invalid decimal amount %q: %w", value.Value, err)
	}
	m.Decimal = d
	return nil
}

// MarshalYAML emits the amount as a plain scalar.
func (m Money) MarshalYAML() (interface{}, error) {
	return m.Decimal.String(), nil
}

// String returns the amount rounded to cents.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}
