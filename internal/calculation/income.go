package calculation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/famplan/planner/internal/domain"
)

// IncomeResolver answers "what was this member earning per month at date D"
// from an append-only, dated income history.
type IncomeResolver struct {
	histories map[string][]domain.IncomeRecord // sorted by effective date
}

// NewIncomeResolver indexes the income records by member. The input slice
// is not mutated.
func NewIncomeResolver(records []domain.IncomeRecord) *IncomeResolver {
	histories := make(map[string][]domain.IncomeRecord)
	for _, rec := range records {
		histories[rec.MemberID] = append(histories[rec.MemberID], rec)
	}
	for id := range histories {
		h := histories[id]
		sort.SliceStable(h, func(i, j int) bool {
			return h[i].EffectiveDate.Before(h[j].EffectiveDate)
		})
	}
	return &IncomeResolver{histories: histories}
}

// IncomeAt returns the income in effect at the given date: the latest
// record with EffectiveDate <= at, or zero when none applies.
func (r *IncomeResolver) IncomeAt(memberID string, at time.Time) decimal.Decimal {
	history := r.histories[memberID]
	for i := len(history) - 1; i >= 0; i-- {
		if !history[i].EffectiveDate.After(at) {
			return history[i].Amount
		}
	}
	return decimal.Zero
}

// HouseholdIncomeAt sums the effective income of all non-child members.
func (r *IncomeResolver) HouseholdIncomeAt(members []domain.FamilyMember, at time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, m := range members {
		if m.IsChild() {
			continue
		}
		total = total.Add(r.IncomeAt(m.ID, at))
	}
	return total
}
