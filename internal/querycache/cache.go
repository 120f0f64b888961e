// Package querycache wraps hashicorp/golang-lru/v2 with the hit/miss
// accounting the vector engine's query cache needs. golang-lru/v2 itself
// has no notion of stats, the same gap the teacher papers over per call
// site in internal/embed.CachedEmbedder; here it is centralized once.
package querycache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity is substituted for a caller-supplied capacity of zero.
const DefaultCapacity = 100

// Stats holds monotonically increasing hit/miss counters, reset only by
// Clear.
type Stats struct {
	Hits   uint64
	Misses uint64
}

// HitRate returns 100*hits/(hits+misses), or 0 when both counters are zero.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return 100 * float64(s.Hits) / float64(total)
}

// Cache is a bounded, least-recently-used key→value store with hit/miss
// accounting. The zero value is not usable; construct with New.
type Cache[K comparable, V any] struct {
	mu    sync.Mutex
	inner *lru.Cache[K, V]
	stats Stats
}

// New creates a Cache with the given capacity. A non-positive capacity is
// replaced by defaultCapacity (callers pass querycache.DefaultCapacity for
// the engine-level default of 100, or their own default for other uses).
func New[K comparable, V any](capacity, defaultCapacity int) *Cache[K, V] {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	// lru.New only fails for a non-positive size, which capacity can no
	// longer be at this point.
	inner, _ := lru.New[K, V](capacity)
	return &Cache[K, V]{inner: inner}
}

// Put inserts or overwrites key, promoting it to most-recently-used and
// possibly evicting the current least-recently-used entry.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inner.Add(key, value)
}

// Get returns the value for key, promoting it to most-recently-used and
// incrementing hits on success or misses otherwise.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.inner.Get(key)
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	return v, ok
}

// Contains reports whether key is present without affecting recency or
// stats.
func (c *Cache[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.Contains(key)
}

// Clear empties the cache and resets both counters to zero.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inner.Purge()
	c.stats = Stats{}
}

// Len returns the number of entries currently cached.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.Len()
}

// Stats returns a snapshot of the hit/miss counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// HitRate returns the current hit rate as a percentage.
func (c *Cache[K, V]) HitRate() float64 {
	return c.Stats().HitRate()
}
