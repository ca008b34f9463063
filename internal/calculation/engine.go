package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/famplan/planner/internal/domain"
	"github.com/famplan/planner/pkg/dateutil"
)

// Engine runs financial projections. A run is a pure function of its
// inputs: working copies only, no I/O inside the month loop, deterministic
// and therefore safe to execute concurrently on independent inputs.
type Engine struct {
	Logger Logger

	// Cache, when set, memoizes results by input hash.
	Cache *ResultCache
}

// NewEngine creates an engine with no-op logging and no cache.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger sets the engine logger. A nil logger restores the no-op.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// RunSimulation projects the snapshot forward under the scenario and
// evaluates every goal against the produced timeline. Validation failures
// surface as *InvalidParameterError before the first month is simulated.
func (e *Engine) RunSimulation(params domain.SimulationParams, snap *domain.Snapshot) (*domain.SimulationResults, error) {
	if err := validateInputs(params, snap); err != nil {
		return nil, err
	}
	horizon, err := horizonMonths(params, snap)
	if err != nil {
		return nil, err
	}

	var cacheKey string
	if e.Cache != nil {
		cacheKey, err = e.Cache.Key(params, snap)
		if err == nil {
			if hit, ok := e.Cache.Get(cacheKey); ok {
				e.Logger.Debugf("simulation cache hit")
				return hit, nil
			}
		} else {
			e.Logger.Warnf("simulation cache keying failed: %v", err)
			cacheKey = ""
		}
	}

	horizonEnd := dateutil.AddMonths(params.StartDate, horizon)
	childProjections, childEvents := e.projectChildren(params, snap, horizonEnd)

	rc := &runContext{
		engine:      e,
		params:      params,
		snap:        snap,
		horizon:     horizon,
		tracker:     NewInflationTracker(params.InflationRate),
		resolver:    NewIncomeResolver(snap.Incomes),
		childEvents: childEvents,
	}

	timeline, totalWithdrawals := rc.generate()
	goalsAnalysis := analyzeGoals(rc, timeline)

	results := &domain.SimulationResults{
		Timeline:         timeline,
		Summary:          buildSummary(params, timeline, goalsAnalysis, totalWithdrawals),
		GoalsAnalysis:    goalsAnalysis,
		ChildProjections: childProjections,
	}

	if e.Cache != nil && cacheKey != "" {
		e.Cache.Put(cacheKey, results)
	}
	e.Logger.Infof("simulated %d months, final assets %s",
		horizon, results.Summary.FinalTotalAssets.StringFixed(2))
	return results, nil
}

// projectChildren expands templates for every included child and buckets
// the resulting milestones by simulated month. Planned children join only
// when the scenario says so.
func (e *Engine) projectChildren(params domain.SimulationParams, snap *domain.Snapshot, horizonEnd time.Time) ([]domain.ChildProjection, map[int][]childEvent) {
	var projections []domain.ChildProjection
	events := make(map[int][]childEvent)

	for _, member := range snap.Members {
		if !member.IsChild() || member.ExpenseTemplateID == "" {
			continue
		}
		if member.Relationship == domain.RelationPlannedChild && !params.IncludePlannedChildren {
			continue
		}
		template := snap.TemplateByID(member.ExpenseTemplateID)
		if template == nil {
			continue
		}

		projection := ProjectChild(*template, member, params.StartDate, horizonEnd)
		projections = append(projections, projection)

		for _, ms := range projection.Milestones {
			if ms.Past {
				continue
			}
			month := ms.MonthsUntil
			if month < 1 {
				// Due in the start month: charge it to the first
				// simulated step.
				month = 1
			}
			events[month] = append(events[month], childEvent{
				childName: member.Name,
				name:      ms.Name,
				amount:    ms.TotalCost,
			})
		}
	}
	return projections, events
}

func buildSummary(params domain.SimulationParams, timeline []domain.TimelinePoint, goals []domain.GoalAnalysis, totalWithdrawals decimal.Decimal) domain.SimulationSummary {
	final := timeline[len(timeline)-1]
	summary := domain.SimulationSummary{
		StartDate:            params.StartDate,
		EndDate:              final.Date,
		Months:               len(timeline),
		FinalTotalAssets:     final.TotalAssets,
		FinalTotalAssetsReal: final.TotalAssetsReal,
		TotalDeposits:        final.TotalDeposits,
		TotalReturns:         final.TotalReturns,
		TotalFees:            final.TotalFees,
		TotalChildExpenses:   final.TotalChildExpenses,
		TotalWithdrawals:     totalWithdrawals,
		GoalsTotal:           len(goals),
	}
	for _, g := range goals {
		if g.IsAchievable {
			summary.GoalsAchievable++
		}
	}
	return summary
}
