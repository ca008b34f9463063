package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TriggerType says how a child expense item is scheduled.
type TriggerType string

const (
	TriggerAgeMonths TriggerType = "age_months"
	TriggerAgeYears  TriggerType = "age_years"
	TriggerEvent     TriggerType = "event"
)

// Frequency says how often a triggered expense repeats within its range.
type Frequency string

const (
	FrequencyOnce      Frequency = "once"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// PeriodMonths returns the repeat interval in months, or 0 for one-shot items.
func (f Frequency) PeriodMonths() int {
	switch f {
	case FrequencyMonthly:
		return 1
	case FrequencyQuarterly:
		return 3
	case FrequencyYearly:
		return 12
	default:
		return 0
	}
}

// ChildExpenseItem is one rule in a template: a trigger, an amount and a
// repeat frequency. Age triggers resolve against the child's birth date;
// event triggers only schedule when an explicit EventDate is supplied.
type ChildExpenseItem struct {
	Name        string      `json:"name"`
	TriggerType TriggerType `json:"trigger_type"`

	// TriggerValue is an age in the unit named by TriggerType. With
	// TriggerValueEnd set and a repeating frequency the item expands into
	// one event per period across the range, both ends inclusive.
	TriggerValue    int  `json:"trigger_value"`
	TriggerValueEnd *int `json:"trigger_value_end,omitempty"`

	Amount    decimal.Decimal `json:"amount"`
	Frequency Frequency       `json:"frequency"`

	EventDate *time.Time `json:"event_date,omitempty"`
}

// ChildExpenseTemplate is a named, read-only list of expense rules that a
// child member can be linked to.
type ChildExpenseTemplate struct {
	ID    string             `json:"id"`
	Name  string             `json:"name"`
	Items []ChildExpenseItem `json:"items"`
}
