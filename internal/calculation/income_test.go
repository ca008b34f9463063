package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/famplan/planner/internal/domain"
)

func date(value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return d
}

func TestIncomeAtPicksLatestEffectiveRecord(t *testing.T) {
	resolver := NewIncomeResolver([]domain.IncomeRecord{
		// Deliberately unsorted.
		{MemberID: "noa", Amount: dec("15000"), EffectiveDate: date("2024-06-01")},
		{MemberID: "noa", Amount: dec("12000"), EffectiveDate: date("2022-01-01")},
		{MemberID: "noa", Amount: dec("18000"), EffectiveDate: date("2026-01-01")},
	})

	tests := []struct {
		name     string
		at       time.Time
		expected decimal.Decimal
	}{
		{"before any record", date("2021-12-31"), decimal.Zero},
		{"first record day", date("2022-01-01"), dec("12000")},
		{"between records", date("2025-03-15"), dec("15000")},
		{"after the latest", date("2030-01-01"), dec("18000")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.IncomeAt("noa", tt.at)
			assert.True(t, got.Equal(tt.expected), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestIncomeAtUnknownMemberIsZero(t *testing.T) {
	resolver := NewIncomeResolver(nil)
	assert.True(t, resolver.IncomeAt("nobody", date("2026-01-01")).IsZero())
}

func TestIncomeAtIsMonotonicInDate(t *testing.T) {
	resolver := NewIncomeResolver([]domain.IncomeRecord{
		{MemberID: "m", Amount: dec("100"), EffectiveDate: date("2023-01-01")},
		{MemberID: "m", Amount: dec("200"), EffectiveDate: date("2024-01-01")},
		{MemberID: "m", Amount: dec("350"), EffectiveDate: date("2025-07-01")},
	})

	previous := decimal.Zero
	for at := date("2022-01-01"); at.Before(date("2027-01-01")); at = at.AddDate(0, 1, 0) {
		got := resolver.IncomeAt("m", at)
		assert.True(t, got.GreaterThanOrEqual(previous),
			"income regressed at %s: %s < %s", at.Format("2006-01"), got, previous)
		previous = got
	}
}

func TestHouseholdIncomeSkipsChildren(t *testing.T) {
	members := []domain.FamilyMember{
		{ID: "noa", Relationship: domain.RelationSelf},
		{ID: "daniel", Relationship: domain.RelationPartner},
		{ID: "alma", Relationship: domain.RelationChild},
	}
	resolver := NewIncomeResolver([]domain.IncomeRecord{
		{MemberID: "noa", Amount: dec("18000"), EffectiveDate: date("2024-01-01")},
		{MemberID: "daniel", Amount: dec("15000"), EffectiveDate: date("2024-01-01")},
		// A child allowance record must not count toward household income.
		{MemberID: "alma", Amount: dec("500"), EffectiveDate: date("2024-01-01")},
	})

	got := resolver.HouseholdIncomeAt(members, date("2026-01-01"))
	assert.True(t, got.Equal(dec("33000")), "expected 33000, got %s", got)
}
