package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsChild(t *testing.T) {
	assert.False(t, FamilyMember{Relationship: RelationSelf}.IsChild())
	assert.False(t, FamilyMember{Relationship: RelationPartner}.IsChild())
	assert.True(t, FamilyMember{Relationship: RelationChild}.IsChild())
	assert.True(t, FamilyMember{Relationship: RelationPlannedChild}.IsChild())
}

func TestEffectiveBirthDate(t *testing.T) {
	born := time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC)
	expected := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)

	child := FamilyMember{Relationship: RelationChild, BirthDate: born}
	got, ok := child.EffectiveBirthDate()
	assert.True(t, ok)
	assert.Equal(t, born, got)

	planned := FamilyMember{Relationship: RelationPlannedChild, ExpectedBirthDate: &expected}
	got, ok = planned.EffectiveBirthDate()
	assert.True(t, ok)
	assert.Equal(t, expected, got)

	// A planned child resolves only through the expected date, even when a
	// birth date is somehow set.
	planned.ExpectedBirthDate = nil
	planned.BirthDate = born
	_, ok = planned.EffectiveBirthDate()
	assert.False(t, ok)

	_, ok = FamilyMember{Relationship: RelationChild}.EffectiveBirthDate()
	assert.False(t, ok)
}
