package calculation

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/famplan/planner/internal/domain"
	"github.com/famplan/planner/pkg/dateutil"
)

// ProjectChild expands an expense template into absolute-dated milestones
// for one child. Age triggers resolve against the child's (expected) birth
// date; event triggers with no date are surfaced as unscheduled instead of
// failing the run. Milestones dated before simStart stay in the list marked
// past but do not count toward the saving totals; milestones past
// horizonEnd are dropped.
func ProjectChild(template domain.ChildExpenseTemplate, member domain.FamilyMember, simStart, horizonEnd time.Time) domain.ChildProjection {
	projection := domain.ChildProjection{
		MemberID: member.ID,
		Name:     member.Name,
	}

	birthDate, hasBirth := member.EffectiveBirthDate()

	for _, item := range template.Items {
		switch item.TriggerType {
		case domain.TriggerEvent:
			if item.EventDate == nil {
				projection.Unscheduled = append(projection.Unscheduled, domain.UnscheduledExpense{
					Name:   item.Name,
					Amount: item.Amount,
				})
				continue
			}
			date := *item.EventDate
			if date.After(horizonEnd) {
				continue
			}
			age := ""
			if hasBirth {
				age = formatAge(dateutil.AgeInMonths(birthDate, date))
			}
			projection.Milestones = append(projection.Milestones, newMilestone(item.Name, date, age, item.Amount, simStart))

		case domain.TriggerAgeMonths, domain.TriggerAgeYears:
			if !hasBirth {
				projection.Unscheduled = append(projection.Unscheduled, domain.UnscheduledExpense{
					Name:   item.Name,
					Amount: item.Amount,
				})
				continue
			}
			for _, offset := range expandOffsets(item) {
				date := dateutil.AddMonths(birthDate, offset)
				if date.After(horizonEnd) {
					continue
				}
				projection.Milestones = append(projection.Milestones,
					newMilestone(item.Name, date, formatAge(offset), item.Amount, simStart))
			}
		}
	}

	sort.SliceStable(projection.Milestones, func(i, j int) bool {
		return projection.Milestones[i].Date.Before(projection.Milestones[j].Date)
	})

	projection.TotalCost = decimal.Zero
	projection.TotalMonthlyNeeded = decimal.Zero
	for _, ms := range projection.Milestones {
		if ms.Past {
			continue
		}
		projection.TotalCost = projection.TotalCost.Add(ms.TotalCost)
		projection.TotalMonthlyNeeded = projection.TotalMonthlyNeeded.Add(ms.MonthlySavingNeeded)
	}
	return projection
}

// expandOffsets turns an age trigger into age offsets in months. A range
// with a repeating frequency yields one offset per period, both ends
// inclusive; everything else is a single offset.
func expandOffsets(item domain.ChildExpenseItem) []int {
	unit := 1
	if item.TriggerType == domain.TriggerAgeYears {
		unit = 12
	}
	start := item.TriggerValue * unit

	step := item.Frequency.PeriodMonths()
	if item.TriggerValueEnd == nil || step == 0 {
		return []int{start}
	}

	end := *item.TriggerValueEnd * unit
	var offsets []int
	for off := start; off <= end; off += step {
		offsets = append(offsets, off)
	}
	return offsets
}

func newMilestone(name string, date time.Time, age string, amount decimal.Decimal, simStart time.Time) domain.Milestone {
	monthsUntil := dateutil.MonthDiff(simStart, date)
	ms := domain.Milestone{
		Name:        name,
		Date:        date,
		ExpectedAge: age,
		MonthsUntil: monthsUntil,
		TotalCost:   amount,
	}
	if date.Before(simStart) && !dateutil.SameMonth(date, simStart) {
		ms.Past = true
		ms.MonthlySavingNeeded = decimal.Zero
		return ms
	}
	months := int64(monthsUntil)
	if months < 1 {
		months = 1
	}
	ms.MonthlySavingNeeded = amount.Div(decimal.NewFromInt(months))
	return ms
}

func formatAge(months int) string {
	years, rem := months/12, months%12
	switch {
	case years == 0:
		return fmt.Sprintf("%dm", rem)
	case rem == 0:
		return fmt.Sprintf("%dy", years)
	default:
		return fmt.Sprintf("%dy %dm", years, rem)
	}
}
