package calculation

import (
	"github.com/shopspring/decimal"
)

// InflationTracker converts between nominal and real values over the
// simulated horizon. It is a pure function of the elapsed months and the
// scenario's annual inflation rate.
type InflationTracker struct {
	monthlyFactor decimal.Decimal // 1 + annual/12
}

// NewInflationTracker creates a tracker for an annual inflation rate
// expressed as a fraction (0.03 for 3%).
func NewInflationTracker(annualRate decimal.Decimal) *InflationTracker {
	return &InflationTracker{
		monthlyFactor: decimal.NewFromInt(1).Add(annualRate.Div(twelve)),
	}
}

// FactorAt returns the cumulative inflation factor after monthIndex months.
// Month 0 is 1.0.
func (t *InflationTracker) FactorAt(monthIndex int) decimal.Decimal {
	if monthIndex <= 0 {
		return decimal.NewFromInt(1)
	}
	return t.monthlyFactor.Pow(decimal.NewFromInt(int64(monthIndex)))
}

// ToReal deflates a nominal value to simulation-start purchasing power.
func (t *InflationTracker) ToReal(nominal decimal.Decimal, monthIndex int) decimal.Decimal {
	return nominal.Div(t.FactorAt(monthIndex))
}

// ToNominal inflates a start-of-simulation value to month monthIndex.
func (t *InflationTracker) ToNominal(real decimal.Decimal, monthIndex int) decimal.Decimal {
	return real.Mul(t.FactorAt(monthIndex))
}
