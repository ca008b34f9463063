package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Relationship classifies a family member for projection purposes.
type Relationship string

const (
	RelationSelf         Relationship = "self"
	RelationPartner      Relationship = "partner"
	RelationChild        Relationship = "child"
	RelationPlannedChild Relationship = "planned_child"
)

// FamilyMember is one person in the household. Children carry a birth date;
// planned children carry an expected birth date instead.
type FamilyMember struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Relationship Relationship `json:"relationship"`

	BirthDate         time.Time  `json:"birth_date,omitempty"`
	ExpectedBirthDate *time.Time `json:"expected_birth_date,omitempty"`

	// ExpenseTemplateID links a child to the expense template that
	// describes their milestone costs. Empty means no projected expenses.
	ExpenseTemplateID string `json:"expense_template_id,omitempty"`
}

// IsChild reports whether the member is an existing or planned child.
func (m FamilyMember) IsChild() bool {
	return m.Relationship == RelationChild || m.Relationship == RelationPlannedChild
}

// EffectiveBirthDate returns the date age-based triggers are resolved
// against: the birth date for existing children, the expected birth date
// for planned ones. ok is false when neither is known.
func (m FamilyMember) EffectiveBirthDate() (time.Time, bool) {
	if m.Relationship == RelationPlannedChild {
		if m.ExpectedBirthDate == nil {
			return time.Time{}, false
		}
		return *m.ExpectedBirthDate, true
	}
	if m.BirthDate.IsZero() {
		return time.Time{}, false
	}
	return m.BirthDate, true
}

// IncomeRecord is one entry in a member's dated income history. The income
// in effect at date D is the latest record with EffectiveDate <= D.
type IncomeRecord struct {
	MemberID      string          `json:"member_id"`
	Amount        decimal.Decimal `json:"amount"`
	EffectiveDate time.Time       `json:"effective_date"`
}
