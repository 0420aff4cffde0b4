// Package cache provides a time-bounded in-memory cache for refresh results.
package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/yourusername/matchday-edge/internal/metrics"
)

// DefaultTTL is the lifetime of an entry stored with Set
const DefaultTTL = 5 * time.Minute

// TTLCache stores values for a bounded time. Expired entries are never returned and are
// evicted lazily on read; no background janitor runs.
type TTLCache[V any] struct {
	cache     *gocache.Cache
	ttl       time.Duration
	maxSize   int
	mu        sync.Mutex
	hitCount  uint64
	missCount uint64
}

// New creates a cache with the given default TTL. maxSize <= 0 means unbounded.
func New[V any](ttl time.Duration, maxSize int) *TTLCache[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TTLCache[V]{
		// cleanup interval 0 disables the janitor goroutine
		cache:   gocache.New(ttl, 0),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// TTL returns the default lifetime of entries
func (c *TTLCache[V]) TTL() time.Duration {
	return c.ttl
}

// Set stores a value with the default TTL
func (c *TTLCache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value that expires after ttl
func (c *TTLCache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}
	c.makeRoom(key)
	c.cache.Set(key, value, ttl)
}

// Get returns the value stored under key if it has not expired
func (c *TTLCache[V]) Get(key string) (V, bool) {
	var zero V

	item, found := c.cache.Get(key)
	if !found {
		// go-cache keeps expired items until deleted
		c.cache.Delete(key)
		c.recordMiss()
		return zero, false
	}

	value, ok := item.(V)
	if !ok {
		c.cache.Delete(key)
		c.recordMiss()
		return zero, false
	}

	c.recordHit()
	return value, true
}

// Delete removes a key
func (c *TTLCache[V]) Delete(key string) {
	c.cache.Delete(key)
}

// Clear flushes the cache and resets its statistics
func (c *TTLCache[V]) Clear() {
	c.cache.Flush()

	c.mu.Lock()
	c.hitCount = 0
	c.missCount = 0
	c.mu.Unlock()
	metrics.UpdateCacheHitRatio(0)
}

// Len returns the number of stored entries, including expired ones not yet evicted
func (c *TTLCache[V]) Len() int {
	return c.cache.ItemCount()
}

// Stats returns cache statistics
func (c *TTLCache[V]) Stats() (hits, misses uint64, ratio float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statsLocked()
}

func (c *TTLCache[V]) statsLocked() (hits, misses uint64, ratio float64) {
	hits = c.hitCount
	misses = c.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

func (c *TTLCache[V]) recordHit() {
	c.mu.Lock()
	c.hitCount++
	_, _, ratio := c.statsLocked()
	c.mu.Unlock()
	metrics.UpdateCacheHitRatio(ratio)
}

func (c *TTLCache[V]) recordMiss() {
	c.mu.Lock()
	c.missCount++
	_, _, ratio := c.statsLocked()
	c.mu.Unlock()
	metrics.UpdateCacheHitRatio(ratio)
}

// makeRoom keeps the cache within maxSize before key is inserted. Expired entries go
// first; if the cache is still full the entry closest to expiry is evicted.
func (c *TTLCache[V]) makeRoom(key string) {
	if c.maxSize <= 0 || c.cache.ItemCount() < c.maxSize {
		return
	}
	if _, found := c.cache.Get(key); found {
		return
	}

	c.cache.DeleteExpired()
	if c.cache.ItemCount() < c.maxSize {
		return
	}

	var (
		oldestKey string
		oldestExp int64
	)
	for k, item := range c.cache.Items() {
		if oldestKey == "" || item.Expiration < oldestExp {
			oldestKey = k
			oldestExp = item.Expiration
		}
	}
	if oldestKey != "" {
		c.cache.Delete(oldestKey)
	}
}
