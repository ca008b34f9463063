package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduledFlow is a one-off extra deposit or withdrawal. AssetID names the
// target account; when empty the amount is split pro-rata by balance across
// all assets.
type ScheduledFlow struct {
	Date    time.Time       `json:"date"`
	Amount  decimal.Decimal `json:"amount"`
	AssetID string          `json:"asset_id,omitempty"`
}

// YearlyExpense recurs every simulated year in the named calendar month.
type YearlyExpense struct {
	Name               string          `json:"name"`
	Amount             decimal.Decimal `json:"amount"`
	Month              time.Month      `json:"month"`
	AdjustForInflation bool            `json:"adjust_for_inflation"`
}

// SimulationParams is one scenario: the horizon, the inflation assumption
// and the user-specified overrides layered on top of the asset snapshots.
type SimulationParams struct {
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	// EndAge derives the horizon from the age of the "self" member when
	// EndDate is not given. Rounded up to whole months.
	EndAge *int `json:"end_age,omitempty"`

	// InflationRate is annual, e.g. 0.03 for 3%.
	InflationRate decimal.Decimal `json:"inflation_rate"`

	IncludePlannedChildren bool `json:"include_planned_children"`

	ExtraMonthlyDeposit decimal.Decimal `json:"extra_monthly_deposit"`
	ExtraDeposits       []ScheduledFlow `json:"extra_deposits,omitempty"`
	WithdrawalEvents    []ScheduledFlow `json:"withdrawal_events,omitempty"`
	YearlyExpenses      []YearlyExpense `json:"yearly_expenses,omitempty"`
}

// AssetBalance is one entry of a timeline point's per-asset breakdown.
// Breakdowns keep the store's declared asset order so output is
// deterministic.
type AssetBalance struct {
	AssetID string          `json:"asset_id"`
	Balance decimal.Decimal `json:"balance"`
}

// TimelinePoint is one simulated month. The Total* fields other than
// TotalAssets are cumulative since the simulation start.
type TimelinePoint struct {
	MonthIndex int       `json:"month_index"`
	Date       time.Time `json:"date"`

	TotalAssets     decimal.Decimal `json:"total_assets"`
	TotalAssetsReal decimal.Decimal `json:"total_assets_real"`

	TotalDeposits      decimal.Decimal `json:"total_deposits"`
	TotalReturns       decimal.Decimal `json:"total_returns"`
	TotalFees          decimal.Decimal `json:"total_fees"`
	TotalChildExpenses decimal.Decimal `json:"total_child_expenses"`

	MonthlyIncome   decimal.Decimal `json:"monthly_income"`
	InflationFactor decimal.Decimal `json:"inflation_factor"`

	AssetsBreakdown []AssetBalance `json:"assets_breakdown"`

	// Events lists, in emission order, the human-readable descriptions of
	// everything that fired this month: milestones, scheduled flows,
	// yearly expenses, clamped withdrawals.
	Events []string `json:"events,omitempty"`
}

// Milestone is a dated, costed event expanded from a child expense template.
type Milestone struct {
	Name        string          `json:"name"`
	Date        time.Time       `json:"date"`
	ExpectedAge string          `json:"expected_age"`
	MonthsUntil int             `json:"months_until"`
	TotalCost   decimal.Decimal `json:"total_cost"`

	// MonthlySavingNeeded is TotalCost spread over the months remaining
	// until the milestone.
	MonthlySavingNeeded decimal.Decimal `json:"monthly_saving_needed"`

	// Past milestones stay in the projection for display but do not count
	// toward required-saving totals.
	Past bool `json:"past,omitempty"`
}

// UnscheduledExpense is an event-triggered template item with no resolvable
// date. It is excluded from the timeline but surfaced for caller visibility.
type UnscheduledExpense struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// ChildProjection is the per-child milestone expansion.
type ChildProjection struct {
	MemberID    string               `json:"member_id"`
	Name        string               `json:"name"`
	Milestones  []Milestone          `json:"milestones"`
	Unscheduled []UnscheduledExpense `json:"unscheduled,omitempty"`

	TotalCost          decimal.Decimal `json:"total_cost"`
	TotalMonthlyNeeded decimal.Decimal `json:"total_monthly_needed"`
}

// SimulationSummary condenses a finished run.
type SimulationSummary struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Months    int       `json:"months"`

	FinalTotalAssets     decimal.Decimal `json:"final_total_assets"`
	FinalTotalAssetsReal decimal.Decimal `json:"final_total_assets_real"`
	TotalDeposits        decimal.Decimal `json:"total_deposits"`
	TotalReturns         decimal.Decimal `json:"total_returns"`
	TotalFees            decimal.Decimal `json:"total_fees"`
	TotalChildExpenses   decimal.Decimal `json:"total_child_expenses"`
	TotalWithdrawals     decimal.Decimal `json:"total_withdrawals"`
	GoalsAchievable      int             `json:"goals_achievable"`
	GoalsTotal           int             `json:"goals_total"`
}

// SimulationResults is the full output of one engine run.
type SimulationResults struct {
	Timeline         []TimelinePoint   `json:"timeline"`
	Summary          SimulationSummary `json:"summary"`
	GoalsAnalysis    []GoalAnalysis    `json:"goals_analysis"`
	ChildProjections []ChildProjection `json:"child_projections"`
}

// FinalPoint returns the last timeline point, or nil for an empty timeline.
func (r *SimulationResults) FinalPoint() *TimelinePoint {
	if len(r.Timeline) == 0 {
		return nil
	}
	return &r.Timeline[len(r.Timeline)-1]
}
