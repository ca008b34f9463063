package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotLookups(t *testing.T) {
	snap := &Snapshot{
		Assets: []Asset{
			{ID: "pension", Balance: decimal.NewFromInt(250000)},
			{ID: "brokerage", Balance: decimal.NewFromInt(80000)},
		},
		Members: []FamilyMember{
			{ID: "daniel", Relationship: RelationPartner},
			{ID: "noa", Relationship: RelationSelf},
		},
		Templates: []ChildExpenseTemplate{{ID: "standard-child"}},
	}

	asset := snap.AssetByID("brokerage")
	require.NotNil(t, asset)
	assert.True(t, asset.Balance.Equal(decimal.NewFromInt(80000)))
	assert.Nil(t, snap.AssetByID("missing"))

	require.NotNil(t, snap.TemplateByID("standard-child"))
	assert.Nil(t, snap.TemplateByID("missing"))

	self := snap.SelfMember()
	require.NotNil(t, self)
	assert.Equal(t, "noa", self.ID)
	assert.Nil(t, (&Snapshot{}).SelfMember())
}

func TestTotalBalance(t *testing.T) {
	assets := []Asset{
		{ID: "a", Balance: decimal.NewFromInt(100)},
		{ID: "b", Balance: decimal.NewFromFloat(0.5)},
	}
	assert.True(t, TotalBalance(assets).Equal(decimal.NewFromFloat(100.5)))
	assert.True(t, TotalBalance(nil).IsZero())
}

func TestFrequencyPeriodMonths(t *testing.T) {
	assert.Equal(t, 0, FrequencyOnce.PeriodMonths())
	assert.Equal(t, 1, FrequencyMonthly.PeriodMonths())
	assert.Equal(t, 3, FrequencyQuarterly.PeriodMonths())
	assert.Equal(t, 12, FrequencyYearly.PeriodMonths())
}

func TestFinalPoint(t *testing.T) {
	empty := &SimulationResults{}
	assert.Nil(t, empty.FinalPoint())

	results := &SimulationResults{
		Timeline: []TimelinePoint{{MonthIndex: 1}, {MonthIndex: 2}},
	}
	final := results.FinalPoint()
	require.NotNil(t, final)
	assert.Equal(t, 2, final.MonthIndex)
}
