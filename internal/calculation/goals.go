package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/famplan/planner/internal/domain"
	"github.com/famplan/planner/pkg/dateutil"
)

// requiredExtraCap bounds the back-solve search; a goal needing more than
// this per month is reported as having no feasible contribution.
const requiredExtraCap = 1_000_000_000

// analyzeGoals evaluates every goal against the finished timeline. For
// unachievable goals with a target date it back-solves the minimal uniform
// extra monthly contribution, in whole currency units, that closes the gap
// by that date.
func analyzeGoals(rc *runContext, timeline []domain.TimelinePoint) []domain.GoalAnalysis {
	analyses := make([]domain.GoalAnalysis, 0, len(rc.snap.Goals))
	for _, goal := range rc.snap.Goals {
		analyses = append(analyses, analyzeGoal(rc, timeline, goal))
	}
	return analyses
}

func analyzeGoal(rc *runContext, timeline []domain.TimelinePoint, goal domain.Goal) domain.GoalAnalysis {
	analysis := domain.GoalAnalysis{
		GoalID:       goal.ID,
		Name:         goal.Name,
		TargetAmount: goal.TargetAmount,
	}

	idx := goalTargetIndex(rc.params.StartDate, goal.TargetDate, len(timeline))
	analysis.ProjectedAmount = goalBalance(timeline[idx-1], goal)

	if goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount) {
		analysis.IsAchievable = true
		start := rc.params.StartDate
		analysis.AchievementDate = &start
		return analysis
	}

	if analysis.ProjectedAmount.GreaterThanOrEqual(goal.TargetAmount) {
		analysis.IsAchievable = true
		analysis.AchievementDate = firstCrossing(timeline[:idx], goal)
		return analysis
	}

	shortfall := goal.TargetAmount.Sub(analysis.ProjectedAmount)
	analysis.Shortfall = &shortfall

	if goal.TargetDate != nil {
		if extra, ok := solveRequiredExtra(rc, goal, idx, shortfall); ok {
			analysis.RequiredExtraMonthly = &extra
		}
	}
	return analysis
}

// goalTargetIndex maps a goal's target date to a 1-based timeline index,
// clamped to the produced horizon. Goals without a date measure at the end.
func goalTargetIndex(start time.Time, targetDate *time.Time, months int) int {
	if targetDate == nil {
		return months
	}
	idx := dateutil.MonthDiff(start, *targetDate)
	if idx < 1 {
		return 1
	}
	if idx > months {
		return months
	}
	return idx
}

// goalBalance measures the balance a goal is tracked against in one point:
// the linked asset when set, total assets otherwise.
func goalBalance(point domain.TimelinePoint, goal domain.Goal) decimal.Decimal {
	if goal.LinkedAssetID == "" {
		return point.TotalAssets
	}
	for _, ab := range point.AssetsBreakdown {
		if ab.AssetID == goal.LinkedAssetID {
			return ab.Balance
		}
	}
	return decimal.Zero
}

func firstCrossing(timeline []domain.TimelinePoint, goal domain.Goal) *time.Time {
	for i := range timeline {
		if goalBalance(timeline[i], goal).GreaterThanOrEqual(goal.TargetAmount) {
			date := timeline[i].Date
			return &date
		}
	}
	return nil
}

// solveRequiredExtra binary-searches the smallest whole-unit extra monthly
// contribution that reaches the target by the target month, re-simulating
// the scenario for each probe. The contribution goes to the goal's linked
// asset when one is set, so the answer is finite even when that asset
// would receive no share of a pro-rata split.
func solveRequiredExtra(rc *runContext, goal domain.Goal, idx int, shortfall decimal.Decimal) (decimal.Decimal, bool) {
	reaches := func(extra int64) bool {
		probe := rc.withExtraMonthly(decimal.NewFromInt(extra), goal.LinkedAssetID)
		timeline, _ := probe.generate()
		return goalBalance(timeline[idx-1], goal).GreaterThanOrEqual(goal.TargetAmount)
	}

	// Start from the no-growth estimate and double until the target is
	// reached or the search is hopeless.
	lo := int64(0)
	hi := shortfall.Div(decimal.NewFromInt(int64(idx))).Ceil().IntPart()
	if hi < 1 {
		hi = 1
	}
	for !reaches(hi) {
		lo = hi
		hi *= 2
		if hi > requiredExtraCap {
			return decimal.Decimal{}, false
		}
	}

	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if reaches(mid) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return decimal.NewFromInt(hi), true
}
