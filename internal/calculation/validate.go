package calculation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/famplan/planner/internal/domain"
	"github.com/famplan/planner/pkg/dateutil"
)

// maxHorizonMonths caps a run at a century of monthly steps.
const maxHorizonMonths = 1200

var (
	minusOne = decimal.NewFromInt(-1)
	one      = decimal.NewFromInt(1)
)

// validateInputs checks the scenario and snapshot before the first month is
// simulated. Any failure is an *InvalidParameterError and no timeline is
// produced.
func validateInputs(params domain.SimulationParams, snap *domain.Snapshot) error {
	if params.StartDate.IsZero() {
		return invalidParam("start_date", "is required")
	}
	if params.EndDate == nil && params.EndAge == nil {
		return invalidParam("end_date", "either end_date or end_age is required")
	}
	if params.EndDate != nil && !params.EndDate.After(params.StartDate) {
		return invalidParam("end_date", "must be after start_date")
	}
	if params.EndAge != nil && params.EndDate == nil {
		self := snap.SelfMember()
		if self == nil {
			return invalidParam("end_age", "requires a member with relationship %q", domain.RelationSelf)
		}
		if self.BirthDate.IsZero() {
			return invalidParam("end_age", "requires a birth date on the %q member", domain.RelationSelf)
		}
		if *params.EndAge <= dateutil.Age(self.BirthDate, params.StartDate) {
			return invalidParam("end_age", "must exceed the current age of the %q member", domain.RelationSelf)
		}
	}
	if params.InflationRate.LessThanOrEqual(minusOne) {
		return invalidParam("inflation_rate", "must be greater than -100%%")
	}
	if params.ExtraMonthlyDeposit.IsNegative() {
		return invalidParam("extra_monthly_deposit", "cannot be negative")
	}

	if len(snap.Assets) == 0 {
		return invalidParam("assets", "at least one asset is required")
	}
	seen := make(map[string]bool, len(snap.Assets))
	for i, a := range snap.Assets {
		field := fmt.Sprintf("assets[%d]", i)
		if a.ID == "" {
			return invalidParam(field+".id", "is required")
		}
		if seen[a.ID] {
			return invalidParam(field+".id", "duplicate asset id %q", a.ID)
		}
		seen[a.ID] = true
		if a.Balance.IsNegative() {
			return invalidParam(field+".balance", "cannot be negative")
		}
		if a.MonthlyDeposit.IsNegative() || a.EmployerDeposit.IsNegative() {
			return invalidParam(field+".monthly_deposit", "deposits cannot be negative")
		}
		if a.AnnualReturnRate.LessThan(minusOne) {
			return invalidParam(field+".annual_return_rate", "cannot be less than -100%%")
		}
		if a.FeeOnBalanceRate.IsNegative() || a.FeeOnBalanceRate.GreaterThan(one) {
			return invalidParam(field+".fee_on_balance_rate", "must be between 0 and 1")
		}
		if a.FeeOnDepositRate.IsNegative() || a.FeeOnDepositRate.GreaterThan(one) {
			return invalidParam(field+".fee_on_deposit_rate", "must be between 0 and 1")
		}
	}

	for i, flow := range params.ExtraDeposits {
		if err := validateFlow(fmt.Sprintf("extra_deposits[%d]", i), flow, params.StartDate, snap); err != nil {
			return err
		}
	}
	for i, flow := range params.WithdrawalEvents {
		if err := validateFlow(fmt.Sprintf("withdrawal_events[%d]", i), flow, params.StartDate, snap); err != nil {
			return err
		}
	}
	for i, ye := range params.YearlyExpenses {
		field := fmt.Sprintf("yearly_expenses[%d]", i)
		if ye.Amount.IsNegative() {
			return invalidParam(field+".amount", "cannot be negative")
		}
		if ye.Month < 1 || ye.Month > 12 {
			return invalidParam(field+".month", "must be a calendar month between 1 and 12")
		}
	}

	for i, rec := range snap.Incomes {
		field := fmt.Sprintf("incomes[%d]", i)
		if rec.Amount.IsNegative() {
			return invalidParam(field+".amount", "cannot be negative")
		}
		if rec.EffectiveDate.IsZero() {
			return invalidParam(field+".effective_date", "is required")
		}
	}

	for i, g := range snap.Goals {
		field := fmt.Sprintf("goals[%d]", i)
		if g.TargetAmount.IsNegative() {
			return invalidParam(field+".target_amount", "cannot be negative")
		}
		if g.LinkedAssetID != "" && snap.AssetByID(g.LinkedAssetID) == nil {
			return invalidParam(field+".linked_asset_id", "unknown asset %q", g.LinkedAssetID)
		}
	}

	for i, m := range snap.Members {
		if m.ID == "" {
			return invalidParam(fmt.Sprintf("members[%d].id", i), "is required")
		}
		if m.ExpenseTemplateID != "" && snap.TemplateByID(m.ExpenseTemplateID) == nil {
			return invalidParam(fmt.Sprintf("members[%d].expense_template_id", i),
				"unknown template %q", m.ExpenseTemplateID)
		}
	}

	for ti, tmpl := range snap.Templates {
		for ii, item := range tmpl.Items {
			field := fmt.Sprintf("templates[%d].items[%d]", ti, ii)
			if item.Amount.IsNegative() {
				return invalidParam(field+".amount", "cannot be negative")
			}
			switch item.TriggerType {
			case domain.TriggerAgeMonths, domain.TriggerAgeYears, domain.TriggerEvent:
			default:
				return invalidParam(field+".trigger_type", "unknown trigger type %q", item.TriggerType)
			}
			switch item.Frequency {
			case domain.FrequencyOnce, domain.FrequencyMonthly, domain.FrequencyQuarterly, domain.FrequencyYearly:
			default:
				return invalidParam(field+".frequency", "unknown frequency %q", item.Frequency)
			}
			if item.TriggerValueEnd != nil && *item.TriggerValueEnd < item.TriggerValue {
				return invalidParam(field+".trigger_value_end", "cannot precede trigger_value")
			}
		}
	}

	return nil
}

func validateFlow(field string, flow domain.ScheduledFlow, start time.Time, snap *domain.Snapshot) error {
	if flow.Amount.IsNegative() {
		return invalidParam(field+".amount", "cannot be negative")
	}
	if flow.Date.IsZero() {
		return invalidParam(field+".date", "is required")
	}
	if flow.Date.Before(dateutil.StartOfMonth(start)) {
		return invalidParam(field+".date", "precedes the scenario start month")
	}
	if flow.AssetID != "" && snap.AssetByID(flow.AssetID) == nil {
		return invalidParam(field+".asset_id", "unknown asset %q", flow.AssetID)
	}
	return nil
}

// horizonMonths derives the simulated span in months from the scenario,
// rounding partial months up. Inputs are assumed validated.
func horizonMonths(params domain.SimulationParams, snap *domain.Snapshot) (int, error) {
	var months int
	if params.EndDate != nil {
		months = dateutil.CeilMonthDiff(params.StartDate, *params.EndDate)
	} else {
		self := snap.SelfMember()
		target := dateutil.AddYears(self.BirthDate, *params.EndAge)
		months = dateutil.CeilMonthDiff(params.StartDate, target)
	}
	if months < 1 {
		months = 1
	}
	if months > maxHorizonMonths {
		return 0, invalidParam("end_date", "horizon of %d months exceeds the maximum of %d", months, maxHorizonMonths)
	}
	return months, nil
}
