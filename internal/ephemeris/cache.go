package ephemeris

import (
	"log/slog"
	"sync"
	"time"

	"github.com/helio/heliogo/internal/catalog"
	"github.com/helio/heliogo/internal/metrics"
)

// CacheConfig holds longitude cache bounds.
type CacheConfig struct {
	Capacity   int // max entries before eviction (default: 1000)
	EvictBatch int // oldest entries dropped per eviction (default: 100)
}

// DefaultCacheConfig returns the documented defaults.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{Capacity: 1000, EvictBatch: 100}
}

// cacheKey buckets an instant to its UTC calendar day, so all animation
// sub-steps within one day share a single entry.
type cacheKey struct {
	body catalog.Body
	day  int64 // UTC day number (unix seconds / 86400, floored)
}

func dayBucket(t time.Time) int64 {
	sec := t.Unix()
	if sec < 0 {
		// Floor division for pre-1970 instants.
		return (sec - 86399) / 86400
	}
	return sec / 86400
}

// LongitudeCache is a bounded memoization layer in front of the Adapter.
// Eviction is deliberately simple: once Capacity is reached, the oldest
// EvictBatch entries by insertion order are dropped, with no access-recency
// tracking. Safe for concurrent use.
type LongitudeCache struct {
	mu      sync.Mutex
	entries map[cacheKey]float64
	order   []cacheKey // insertion order, oldest first

	adapter *Adapter
	config  CacheConfig
	logger  *slog.Logger
}

// NewLongitudeCache creates a cache delegating misses to adapter.
// Zero or negative config fields fall back to the defaults.
func NewLongitudeCache(adapter *Adapter, config CacheConfig, logger *slog.Logger) *LongitudeCache {
	def := DefaultCacheConfig()
	if config.Capacity <= 0 {
		config.Capacity = def.Capacity
	}
	if config.EvictBatch <= 0 {
		config.EvictBatch = def.EvictBatch
	}
	if config.EvictBatch > config.Capacity {
		config.EvictBatch = config.Capacity
	}
	return &LongitudeCache{
		entries: make(map[cacheKey]float64),
		adapter: adapter,
		config:  config,
		logger:  logger,
	}
}

// Get returns the ecliptic longitude of body on the calendar day of t,
// computing and storing it on a miss. Inputs that fail validation are
// served by the adapter's fail-soft zero and never stored, so repeated
// failures do not pollute the cache or count toward its bound.
func (c *LongitudeCache) Get(body catalog.Body, t time.Time) float64 {
	if !body.Valid() || t.IsZero() {
		// Let the adapter log and absorb; nothing is cached.
		return c.adapter.EclipticLongitude(body, t)
	}

	key := cacheKey{body: body, day: dayBucket(t.UTC())}

	c.mu.Lock()
	if deg, ok := c.entries[key]; ok {
		c.mu.Unlock()
		metrics.IncCacheHits()
		return deg
	}
	c.mu.Unlock()

	metrics.IncCacheMisses()
	deg, ok := c.adapter.lookup(body, t)
	if !ok {
		return deg
	}

	c.mu.Lock()
	// Re-check: a concurrent miss for the same key may have stored already.
	if cached, exists := c.entries[key]; exists {
		c.mu.Unlock()
		return cached
	}
	if len(c.entries) >= c.config.Capacity {
		c.evictOldestLocked()
	}
	c.entries[key] = deg
	c.order = append(c.order, key)
	size := len(c.entries)
	c.mu.Unlock()

	metrics.SetCacheEntries(size)
	return deg
}

// evictOldestLocked drops the oldest EvictBatch entries. Caller holds mu.
func (c *LongitudeCache) evictOldestLocked() {
	n := c.config.EvictBatch
	if n > len(c.order) {
		n = len(c.order)
	}
	for _, key := range c.order[:n] {
		delete(c.entries, key)
	}
	c.order = append([]cacheKey{}, c.order[n:]...)

	metrics.AddCacheEvictions(n)
	c.logger.Debug("longitude cache eviction",
		"entries_removed", n,
		"entries_remaining", len(c.entries),
	)
}

// Size returns the current entry count.
func (c *LongitudeCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear empties the cache.
func (c *LongitudeCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[cacheKey]float64)
	c.order = nil
	c.mu.Unlock()
	metrics.SetCacheEntries(0)
}
