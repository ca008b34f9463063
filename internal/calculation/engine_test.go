package calculation

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famplan/planner/internal/domain"
)

func datePtr(value string) *time.Time {
	d := date(value)
	return &d
}

func singleAssetSnapshot(balance, monthlyDeposit, annualReturn string) *domain.Snapshot {
	return &domain.Snapshot{
		Assets: []domain.Asset{
			{
				ID:               "pension",
				Name:             "Pension",
				Balance:          dec(balance),
				MonthlyDeposit:   dec(monthlyDeposit),
				AnnualReturnRate: dec(annualReturn),
			},
		},
	}
}

func yearParams() domain.SimulationParams {
	return domain.SimulationParams{
		StartDate: date("2026-01-01"),
		EndDate:   datePtr("2027-01-01"),
	}
}

func TestRunSimulationCompoundsMonthly(t *testing.T) {
	engine := NewEngine()
	snap := singleAssetSnapshot("100000", "1000", "0.06")

	results, err := engine.RunSimulation(yearParams(), snap)
	require.NoError(t, err)
	require.Len(t, results.Timeline, 12)

	// Replay the projection independently: each month credits the deposit
	// and then earns 0.5% on the new balance.
	balance := dec("100000")
	monthlyRate := dec("0.005")
	for month := 1; month <= 12; month++ {
		balance = balance.Add(dec("1000"))
		balance = balance.Add(balance.Mul(monthlyRate))
		point := results.Timeline[month-1]
		assert.Equal(t, month, point.MonthIndex)
		assert.True(t, point.TotalAssets.Equal(balance),
			"month %d: expected %s, got %s", month, balance, point.TotalAssets)
	}

	summary := results.Summary
	assert.Equal(t, 12, summary.Months)
	assert.True(t, summary.TotalDeposits.Equal(dec("12000")))
	expectedReturns := balance.Sub(dec("100000")).Sub(dec("12000"))
	assert.True(t, summary.TotalReturns.Equal(expectedReturns),
		"returns: expected %s, got %s", expectedReturns, summary.TotalReturns)
	assert.True(t, summary.TotalFees.IsZero())
}

func TestRunSimulationIsDeterministic(t *testing.T) {
	engine := NewEngine()
	params := yearParams()
	params.InflationRate = dec("0.025")
	params.ExtraDeposits = []domain.ScheduledFlow{
		{Date: date("2026-06-15"), Amount: dec("5000"), AssetID: "pension"},
	}
	snap := singleAssetSnapshot("50000", "2000", "0.07")

	first, err := engine.RunSimulation(params, snap)
	require.NoError(t, err)
	second, err := engine.RunSimulation(params, snap)
	require.NoError(t, err)

	assert.Equal(t, first.Timeline, second.Timeline)
	assert.Equal(t, first.Summary, second.Summary)
}

func TestRunSimulationDoesNotMutateSnapshot(t *testing.T) {
	engine := NewEngine()
	snap := singleAssetSnapshot("100000", "1000", "0.06")

	_, err := engine.RunSimulation(yearParams(), snap)
	require.NoError(t, err)

	assert.True(t, snap.Assets[0].Balance.Equal(dec("100000")),
		"snapshot balance changed to %s", snap.Assets[0].Balance)
}

func TestRunSimulationValidation(t *testing.T) {
	tests := []struct {
		name   string
		params func() domain.SimulationParams
		snap   func() *domain.Snapshot
		field  string
	}{
		{
			name: "missing start date",
			params: func() domain.SimulationParams {
				return domain.SimulationParams{EndDate: datePtr("2027-01-01")}
			},
			snap:  func() *domain.Snapshot { return singleAssetSnapshot("1", "0", "0") },
			field: "start_date",
		},
		{
			name: "no end bound",
			params: func() domain.SimulationParams {
				return domain.SimulationParams{StartDate: date("2026-01-01")}
			},
			snap:  func() *domain.Snapshot { return singleAssetSnapshot("1", "0", "0") },
			field: "end_date",
		},
		{
			name:   "no assets",
			params: yearParams,
			snap:   func() *domain.Snapshot { return &domain.Snapshot{} },
			field:  "assets",
		},
		{
			name: "inflation at -100%",
			params: func() domain.SimulationParams {
				p := yearParams()
				p.InflationRate = dec("-1")
				return p
			},
			snap:  func() *domain.Snapshot { return singleAssetSnapshot("1", "0", "0") },
			field: "inflation_rate",
		},
		{
			name: "negative extra deposit",
			params: func() domain.SimulationParams {
				p := yearParams()
				p.ExtraMonthlyDeposit = dec("-1")
				return p
			},
			snap:  func() *domain.Snapshot { return singleAssetSnapshot("1", "0", "0") },
			field: "extra_monthly_deposit",
		},
		{
			name:   "duplicate asset id",
			params: yearParams,
			snap: func() *domain.Snapshot {
				return &domain.Snapshot{Assets: []domain.Asset{
					{ID: "a", Balance: dec("1")},
					{ID: "a", Balance: dec("1")},
				}}
			},
			field: "assets[1].id",
		},
		{
			name: "withdrawal against unknown asset",
			params: func() domain.SimulationParams {
				p := yearParams()
				p.WithdrawalEvents = []domain.ScheduledFlow{
					{Date: date("2026-06-01"), Amount: dec("100"), AssetID: "missing"},
				}
				return p
			},
			snap:  func() *domain.Snapshot { return singleAssetSnapshot("1", "0", "0") },
			field: "withdrawal_events[0].asset_id",
		},
		{
			name: "withdrawal before the start month",
			params: func() domain.SimulationParams {
				p := yearParams()
				p.WithdrawalEvents = []domain.ScheduledFlow{
					{Date: date("2025-12-31"), Amount: dec("100")},
				}
				return p
			},
			snap:  func() *domain.Snapshot { return singleAssetSnapshot("1", "0", "0") },
			field: "withdrawal_events[0].date",
		},
		{
			name: "yearly expense month out of range",
			params: func() domain.SimulationParams {
				p := yearParams()
				p.YearlyExpenses = []domain.YearlyExpense{
					{Name: "x", Amount: dec("100"), Month: time.Month(13)},
				}
				return p
			},
			snap:  func() *domain.Snapshot { return singleAssetSnapshot("1", "0", "0") },
			field: "yearly_expenses[0].month",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine().RunSimulation(tt.params(), tt.snap())
			require.Error(t, err)
			var invalid *InvalidParameterError
			require.True(t, errors.As(err, &invalid), "expected InvalidParameterError, got %T", err)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestRunSimulationHorizonFromEndAge(t *testing.T) {
	engine := NewEngine()
	endAge := 40
	params := domain.SimulationParams{
		StartDate: date("2026-01-01"),
		EndAge:    &endAge,
	}
	snap := singleAssetSnapshot("1000", "0", "0")
	snap.Members = []domain.FamilyMember{
		{ID: "noa", Name: "Noa", Relationship: domain.RelationSelf, BirthDate: date("1990-01-01")},
	}

	results, err := engine.RunSimulation(params, snap)
	require.NoError(t, err)
	assert.Equal(t, 48, results.Summary.Months, "age 36 to 40 is 48 months")
}

func TestRunSimulationYearlyExpenseAdjustsForInflation(t *testing.T) {
	engine := NewEngine()
	params := yearParams()
	params.InflationRate = dec("0.12") // 1%/month
	params.YearlyExpenses = []domain.YearlyExpense{
		{Name: "insurance", Amount: dec("1200"), Month: time.March, AdjustForInflation: true},
	}
	snap := singleAssetSnapshot("100000", "0", "0")

	results, err := engine.RunSimulation(params, snap)
	require.NoError(t, err)

	// March 2026 is month 2; its inflation factor is 1.01^2.
	expectedCharge := dec("1200").Mul(dec("1.0201"))
	expectedFinal := dec("100000").Sub(expectedCharge)
	assert.True(t, results.Summary.FinalTotalAssets.Equal(expectedFinal),
		"expected %s, got %s", expectedFinal, results.Summary.FinalTotalAssets)

	march := results.Timeline[1]
	require.Len(t, march.Events, 1)
	assert.Contains(t, march.Events[0], "yearly expense insurance")
}

func TestRunSimulationUnroutedWithdrawalSplitsProRata(t *testing.T) {
	engine := NewEngine()
	params := yearParams()
	params.WithdrawalEvents = []domain.ScheduledFlow{
		{Date: date("2026-02-01"), Amount: dec("1000")},
	}
	snap := &domain.Snapshot{
		Assets: []domain.Asset{
			{ID: "a", Balance: dec("7500")},
			{ID: "b", Balance: dec("2500")},
		},
	}

	results, err := engine.RunSimulation(params, snap)
	require.NoError(t, err)

	first := results.Timeline[0]
	require.Len(t, first.AssetsBreakdown, 2)
	assert.True(t, first.AssetsBreakdown[0].Balance.Equal(dec("6750")),
		"asset a should carry 75%% of the withdrawal, got %s", first.AssetsBreakdown[0].Balance)
	assert.True(t, first.AssetsBreakdown[1].Balance.Equal(dec("2250")),
		"asset b should carry 25%% of the withdrawal, got %s", first.AssetsBreakdown[1].Balance)
	assert.True(t, first.TotalAssets.Equal(dec("9000")))
	assert.True(t, results.Summary.TotalWithdrawals.Equal(dec("1000")))
}

func TestRunSimulationRoutedDepositHitsNamedAsset(t *testing.T) {
	engine := NewEngine()
	params := yearParams()
	params.ExtraDeposits = []domain.ScheduledFlow{
		{Date: date("2026-02-10"), Amount: dec("5000"), AssetID: "b"},
	}
	snap := &domain.Snapshot{
		Assets: []domain.Asset{
			{ID: "a", Balance: dec("1000")},
			{ID: "b", Balance: dec("1000")},
		},
	}

	results, err := engine.RunSimulation(params, snap)
	require.NoError(t, err)

	first := results.Timeline[0]
	assert.True(t, first.AssetsBreakdown[0].Balance.Equal(dec("1000")))
	assert.True(t, first.AssetsBreakdown[1].Balance.Equal(dec("6000")))
}

func TestRunSimulationAppliesStartMonthFlows(t *testing.T) {
	engine := NewEngine()
	params := yearParams()
	params.WithdrawalEvents = []domain.ScheduledFlow{
		{Date: date("2026-01-15"), Amount: dec("1000")},
	}
	params.ExtraDeposits = []domain.ScheduledFlow{
		{Date: date("2026-01-20"), Amount: dec("2000"), AssetID: "cash"},
	}
	snap := &domain.Snapshot{
		Assets: []domain.Asset{{ID: "cash", Balance: dec("100000")}},
	}

	results, err := engine.RunSimulation(params, snap)
	require.NoError(t, err)

	// Flows dated inside the start calendar month land on month 1.
	first := results.Timeline[0]
	assert.True(t, first.TotalAssets.Equal(dec("101000")),
		"expected 100000 - 1000 + 2000, got %s", first.TotalAssets)
	assert.True(t, results.Summary.TotalWithdrawals.Equal(dec("1000")))
	require.Len(t, first.Events, 2)
	assert.Contains(t, first.Events, "extra deposit 2000.00 (cash)")
	assert.Contains(t, first.Events, "withdrawal 1000.00")
}

func TestRunSimulationClampsOverdrawnWithdrawal(t *testing.T) {
	engine := NewEngine()
	params := yearParams()
	params.WithdrawalEvents = []domain.ScheduledFlow{
		{Date: date("2026-02-01"), Amount: dec("2000"), AssetID: "cash"},
	}
	snap := &domain.Snapshot{
		Assets: []domain.Asset{{ID: "cash", Balance: dec("500")}},
	}

	results, err := engine.RunSimulation(params, snap)
	require.NoError(t, err, "an overdrawn withdrawal clamps, it does not fail the run")

	first := results.Timeline[0]
	assert.True(t, first.TotalAssets.IsZero())
	assert.True(t, results.Summary.TotalWithdrawals.Equal(dec("500")),
		"only the fulfilled part counts, got %s", results.Summary.TotalWithdrawals)

	var clampEvent bool
	for _, ev := range first.Events {
		if ev == "partial withdrawal from cash: requested 2000.00, fulfilled 500.00" {
			clampEvent = true
		}
	}
	assert.True(t, clampEvent, "expected a partial withdrawal event, got %v", first.Events)
}

func TestRunSimulationChargesChildMilestones(t *testing.T) {
	engine := NewEngine()
	params := domain.SimulationParams{
		StartDate: date("2026-01-01"),
		EndDate:   datePtr("2028-01-01"),
	}
	snap := singleAssetSnapshot("100000", "0", "0")
	snap.Members = []domain.FamilyMember{
		{ID: "alma", Name: "Alma", Relationship: domain.RelationChild,
			BirthDate: date("2020-09-01"), ExpenseTemplateID: "t"},
	}
	snap.Templates = []domain.ChildExpenseTemplate{
		{ID: "t", Items: []domain.ChildExpenseItem{
			{Name: "school start", TriggerType: domain.TriggerAgeYears, TriggerValue: 6,
				Amount: dec("1500"), Frequency: domain.FrequencyOnce},
		}},
	}

	results, err := engine.RunSimulation(params, snap)
	require.NoError(t, err)

	require.Len(t, results.ChildProjections, 1)
	assert.True(t, results.Summary.TotalChildExpenses.Equal(dec("1500")))
	assert.True(t, results.Summary.FinalTotalAssets.Equal(dec("98500")))

	// Age 6 lands on 2026-09-01, month 8 of the run.
	month8 := results.Timeline[7]
	require.Len(t, month8.Events, 1)
	assert.Equal(t, "child expense Alma: school start 1500.00", month8.Events[0])
}

func TestRunSimulationPlannedChildOptIn(t *testing.T) {
	expected := date("2026-06-01")
	snap := singleAssetSnapshot("100000", "0", "0")
	snap.Members = []domain.FamilyMember{
		{ID: "p", Name: "Planned", Relationship: domain.RelationPlannedChild,
			ExpectedBirthDate: &expected, ExpenseTemplateID: "t"},
	}
	snap.Templates = []domain.ChildExpenseTemplate{
		{ID: "t", Items: []domain.ChildExpenseItem{
			{Name: "stroller", TriggerType: domain.TriggerAgeMonths, TriggerValue: 0,
				Amount: dec("3000"), Frequency: domain.FrequencyOnce},
		}},
	}
	params := yearParams()

	engine := NewEngine()
	excluded, err := engine.RunSimulation(params, snap)
	require.NoError(t, err)
	assert.Empty(t, excluded.ChildProjections)
	assert.True(t, excluded.Summary.TotalChildExpenses.IsZero())

	params.IncludePlannedChildren = true
	included, err := engine.RunSimulation(params, snap)
	require.NoError(t, err)
	require.Len(t, included.ChildProjections, 1)
	assert.True(t, included.Summary.TotalChildExpenses.Equal(dec("3000")))
}

func TestRunSimulationReportsRealValues(t *testing.T) {
	engine := NewEngine()
	params := yearParams()
	params.InflationRate = dec("0.12")
	snap := singleAssetSnapshot("100000", "0", "0")

	results, err := engine.RunSimulation(params, snap)
	require.NoError(t, err)

	final := results.Timeline[11]
	expectedFactor := dec("1.01").Pow(decimal.NewFromInt(12))
	assert.True(t, final.InflationFactor.Equal(expectedFactor))
	assert.True(t, final.TotalAssetsReal.Equal(dec("100000").Div(expectedFactor)),
		"real value should deflate by the month-12 factor")
}

func TestRunSimulationServesFromCache(t *testing.T) {
	engine := NewEngine()
	engine.Cache = NewResultCache()
	params := yearParams()
	snap := singleAssetSnapshot("100000", "1000", "0.06")

	first, err := engine.RunSimulation(params, snap)
	require.NoError(t, err)
	assert.Equal(t, 1, engine.Cache.Len())

	second, err := engine.RunSimulation(params, snap)
	require.NoError(t, err)
	assert.Same(t, first, second, "identical inputs should hit the cache")

	params.ExtraMonthlyDeposit = dec("100")
	third, err := engine.RunSimulation(params, snap)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, engine.Cache.Len())
}
