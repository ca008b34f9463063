package calculation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/famplan/planner/internal/domain"
	"github.com/famplan/planner/pkg/dateutil"
)

// childEvent is one template milestone resolved to a simulated month.
type childEvent struct {
	childName string
	name      string
	amount    decimal.Decimal
}

// runContext carries everything one timeline generation needs. Goal
// analysis re-runs the same context with a modified extra monthly deposit,
// so generation must stay a pure function of the context.
type runContext struct {
	engine      *Engine
	params      domain.SimulationParams
	snap        *domain.Snapshot
	horizon     int
	tracker     *InflationTracker
	resolver    *IncomeResolver
	childEvents map[int][]childEvent

	// probeExtra is the goal solver's trial monthly contribution, routed
	// to probeAssetID when set and pro-rata otherwise.
	probeExtra   decimal.Decimal
	probeAssetID string
}

// withExtraMonthly returns a copy of the context that contributes an
// additional monthly deposit, directed at the named asset when given.
func (rc *runContext) withExtraMonthly(extra decimal.Decimal, assetID string) *runContext {
	clone := *rc
	clone.probeExtra = extra
	clone.probeAssetID = assetID
	return &clone
}

// generate runs the month loop and produces one TimelinePoint per simulated
// month, index 1 through horizon, plus the cumulative explicit withdrawals
// for the summary. Working copies of the assets are local to the call; the
// snapshot is never touched.
func (rc *runContext) generate() ([]domain.TimelinePoint, decimal.Decimal) {
	working := make([]domain.Asset, len(rc.snap.Assets))
	for i, a := range rc.snap.Assets {
		working[i] = a.Clone()
	}

	timeline := make([]domain.TimelinePoint, 0, rc.horizon)

	cumDeposits := decimal.Zero
	cumReturns := decimal.Zero
	cumFees := decimal.Zero
	cumChildExpenses := decimal.Zero
	cumWithdrawals := decimal.Zero

	for month := 1; month <= rc.horizon; month++ {
		date := dateutil.AddMonths(rc.params.StartDate, month)
		factor := rc.tracker.FactorAt(month)

		n := len(working)
		extraDeposits := zeroes(n)
		withdrawalReq := zeroes(n)
		childReq := zeroes(n)
		var events []string

		if rc.params.ExtraMonthlyDeposit.IsPositive() {
			addProRata(extraDeposits, working, rc.params.ExtraMonthlyDeposit, "")
		}
		if rc.probeExtra.IsPositive() {
			addProRata(extraDeposits, working, rc.probeExtra, rc.probeAssetID)
		}

		for _, flow := range rc.params.ExtraDeposits {
			if !rc.flowDueThisMonth(flow.Date, date, month) {
				continue
			}
			addProRata(extraDeposits, working, flow.Amount, flow.AssetID)
			events = append(events, fmt.Sprintf("extra deposit %s%s",
				flow.Amount.StringFixed(2), assetSuffix(flow.AssetID)))
		}

		for _, flow := range rc.params.WithdrawalEvents {
			if !rc.flowDueThisMonth(flow.Date, date, month) {
				continue
			}
			addProRata(withdrawalReq, working, flow.Amount, flow.AssetID)
			events = append(events, fmt.Sprintf("withdrawal %s%s",
				flow.Amount.StringFixed(2), assetSuffix(flow.AssetID)))
		}

		for _, ye := range rc.params.YearlyExpenses {
			if ye.Month != date.Month() {
				continue
			}
			amount := ye.Amount
			if ye.AdjustForInflation {
				amount = amount.Mul(factor)
			}
			addProRata(withdrawalReq, working, amount, "")
			events = append(events, fmt.Sprintf("yearly expense %s %s", ye.Name, amount.StringFixed(2)))
		}

		for _, ce := range rc.childEvents[month] {
			addProRata(childReq, working, ce.amount, "")
			events = append(events, fmt.Sprintf("child expense %s: %s %s",
				ce.childName, ce.name, ce.amount.StringFixed(2)))
		}

		for j := range working {
			requested := withdrawalReq[j].Add(childReq[j])
			flows := AdvanceMonth(&working[j], extraDeposits[j], requested)

			cumDeposits = cumDeposits.Add(flows.Deposit)
			cumReturns = cumReturns.Add(flows.GrossReturn)
			cumFees = cumFees.Add(flows.Fees)

			appliedChild := childReq[j]
			appliedWithdrawal := withdrawalReq[j]
			if flows.WithdrawalClamped && requested.IsPositive() {
				ratio := flows.Withdrawal.Div(requested)
				appliedChild = childReq[j].Mul(ratio)
				appliedWithdrawal = flows.Withdrawal.Sub(appliedChild)
				events = append(events, fmt.Sprintf("partial withdrawal from %s: requested %s, fulfilled %s",
					working[j].ID, requested.StringFixed(2), flows.Withdrawal.StringFixed(2)))
			}
			cumChildExpenses = cumChildExpenses.Add(appliedChild)
			cumWithdrawals = cumWithdrawals.Add(appliedWithdrawal)
		}

		totalAssets := domain.TotalBalance(working)
		breakdown := make([]domain.AssetBalance, n)
		for j := range working {
			breakdown[j] = domain.AssetBalance{AssetID: working[j].ID, Balance: working[j].Balance}
		}

		point := domain.TimelinePoint{
			MonthIndex:         month,
			Date:               date,
			TotalAssets:        totalAssets,
			TotalAssetsReal:    rc.tracker.ToReal(totalAssets, month),
			TotalDeposits:      cumDeposits,
			TotalReturns:       cumReturns,
			TotalFees:          cumFees,
			TotalChildExpenses: cumChildExpenses,
			MonthlyIncome:      rc.resolver.HouseholdIncomeAt(rc.snap.Members, date),
			InflationFactor:    factor,
			AssetsBreakdown:    breakdown,
			Events:             events,
		}
		timeline = append(timeline, point)

		if len(events) > 0 {
			rc.engine.Logger.Debugf("month %d (%s): %d events, total %s",
				month, date.Format("2006-01"), len(events), totalAssets.StringFixed(2))
		}
	}

	return timeline, cumWithdrawals
}

// flowDueThisMonth matches a scheduled flow to a simulated month. Flows
// dated inside the start calendar month land on month 1, the same way
// start-month child milestones are charged.
func (rc *runContext) flowDueThisMonth(flowDate, date time.Time, month int) bool {
	if dateutil.SameMonth(flowDate, date) {
		return true
	}
	return month == 1 && dateutil.SameMonth(flowDate, rc.params.StartDate)
}

func zeroes(n int) []decimal.Decimal {
	out := make([]decimal.Decimal, n)
	for i := range out {
		out[i] = decimal.Zero
	}
	return out
}

// addProRata routes an amount into the per-asset slice. A named asset takes
// the whole amount; otherwise it splits pro-rata by current balance, with
// the remainder on the last asset so the shares sum exactly. When every
// balance is zero the split is even.
func addProRata(dest []decimal.Decimal, working []domain.Asset, amount decimal.Decimal, assetID string) {
	if assetID != "" {
		for j := range working {
			if working[j].ID == assetID {
				dest[j] = dest[j].Add(amount)
				return
			}
		}
		return
	}

	total := domain.TotalBalance(working)
	remaining := amount
	last := len(working) - 1
	for j := 0; j < last; j++ {
		var share decimal.Decimal
		if total.IsPositive() {
			share = amount.Mul(working[j].Balance).Div(total)
		} else {
			share = amount.Div(decimal.NewFromInt(int64(len(working))))
		}
		dest[j] = dest[j].Add(share)
		remaining = remaining.Sub(share)
	}
	dest[last] = dest[last].Add(remaining)
}

func assetSuffix(assetID string) string {
	if assetID == "" {
		return ""
	}
	return " (" + assetID + ")"
}
