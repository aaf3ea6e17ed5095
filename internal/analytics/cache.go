package analytics

import (
	"sync"
	"time"
)

// DefaultCacheMaxAge bounds how long a cached aggregate is trusted.
const DefaultCacheMaxAge = 5 * time.Minute

type cacheEntry struct {
	fingerprint int
	value       interface{}
	computedAt  time.Time
}

// isValid reports whether the cached value still matches the dataset
// fingerprint and has not aged out.
func (e cacheEntry) isValid(fingerprint int, now time.Time, maxAge time.Duration) bool {
	return e.fingerprint == fingerprint && now.Sub(e.computedAt) < maxAge
}

// ChartCache memoizes derived chart aggregates keyed by the current entry
// count. Mutations never write here; staleness is decided entirely at read
// time, so invalidation logic lives in one place.
type ChartCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	maxAge  time.Duration
	now     func() time.Time
}

// NewChartCache creates a cache with the given max age. A non-positive
// maxAge falls back to the default.
func NewChartCache(maxAge time.Duration) *ChartCache {
	if maxAge <= 0 {
		maxAge = DefaultCacheMaxAge
	}
	return &ChartCache{
		entries: make(map[string]cacheEntry),
		maxAge:  maxAge,
		now:     time.Now,
	}
}

// Get returns the cached value for key if it was computed against the same
// dataset fingerprint and is still fresh.
func (c *ChartCache) Get(key string, fingerprint int) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || !entry.isValid(fingerprint, c.now(), c.maxAge) {
		return nil, false
	}
	return entry.value, true
}

// Put stores a freshly computed value for key under the given fingerprint.
func (c *ChartCache) Put(key string, fingerprint int, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		fingerprint: fingerprint,
		value:       value,
		computedAt:  c.now(),
	}
}

// Clear drops every cached aggregate.
func (c *ChartCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}
