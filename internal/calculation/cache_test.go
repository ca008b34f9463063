package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famplan/planner/internal/domain"
)

func TestResultCacheKeyIsStable(t *testing.T) {
	cache := NewResultCache()
	params := yearParams()
	snap := singleAssetSnapshot("100000", "1000", "0.06")

	first, err := cache.Key(params, snap)
	require.NoError(t, err)
	second, err := cache.Key(params, snap)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResultCacheKeyVariesWithInputs(t *testing.T) {
	cache := NewResultCache()
	params := yearParams()
	snap := singleAssetSnapshot("100000", "1000", "0.06")

	base, err := cache.Key(params, snap)
	require.NoError(t, err)

	changed := params
	changed.ExtraMonthlyDeposit = dec("0.01")
	key, err := cache.Key(changed, snap)
	require.NoError(t, err)
	assert.NotEqual(t, base, key, "a changed scenario must produce a new key")

	other := singleAssetSnapshot("100000.01", "1000", "0.06")
	key, err = cache.Key(params, other)
	require.NoError(t, err)
	assert.NotEqual(t, base, key, "a changed snapshot must produce a new key")
}

func TestResultCacheGetPut(t *testing.T) {
	cache := NewResultCache()
	_, ok := cache.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())

	stored := &domain.SimulationResults{}
	cache.Put("k", stored)
	got, ok := cache.Get("k")
	require.True(t, ok)
	assert.Same(t, stored, got)
	assert.Equal(t, 1, cache.Len())
}
