package calculation

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/goccy/go-json"

	"github.com/famplan/planner/internal/domain"
)

// ResultCache memoizes simulation results by a hash of the full input set.
// Because a run is a pure function of its inputs, a hit can return the
// stored results unchanged; any mutation to the inputs produces a different
// key. Callers must treat cached results as read-only.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]*domain.SimulationResults
}

// NewResultCache creates an empty cache.
func NewResultCache() *ResultCache {
	return &ResultCache{entries: make(map[string]*domain.SimulationResults)}
}

type cacheInput struct {
	Params   domain.SimulationParams `json:"params"`
	Snapshot *domain.Snapshot        `json:"snapshot"`
}

// Key derives the cache key for one scenario plus snapshot.
func (c *ResultCache) Key(params domain.SimulationParams, snap *domain.Snapshot) (string, error) {
	encoded, err := json.Marshal(cacheInput{Params: params, Snapshot: snap})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:]), nil
}

// Get returns the stored results for a key, if any.
func (c *ResultCache) Get(key string) (*domain.SimulationResults, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	results, ok := c.entries[key]
	return results, ok
}

// Put stores results under a key.
func (c *ResultCache) Put(key string, results *domain.SimulationResults) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = results
}

// Len reports the number of cached runs.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
