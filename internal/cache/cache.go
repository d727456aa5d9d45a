// Package cache provides a small in-memory TTL cache for computed
// analytics. Entries live for the duration of the process only.
package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a TTL key-value store. Concurrent computations of the same
// key are collapsed into one via singleflight; a failed computation
// leaves any previously cached value in place.
type Cache struct {
	mu    sync.RWMutex
	items map[string]entry
	group singleflight.Group

	// now is the clock; replaceable in tests.
	now func() time.Time
}

// New returns an empty cache using the wall clock.
func New() *Cache {
	return NewWithClock(time.Now)
}

// NewWithClock returns an empty cache with an injected clock.
func NewWithClock(now func() time.Time) *Cache {
	return &Cache{
		items: make(map[string]entry),
		now:   now,
	}
}

// Get returns the cached value for key when present and unexpired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the given TTL.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	c.items[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// GetOrCompute returns the cached value for key, or runs fn to produce
// it. The lock is not held during fn; concurrent callers for the same
// key share one execution. When fn fails, the error is returned and the
// cache is left untouched, so a stale-but-valid entry survives a failed
// refresh attempt made via Forget-then-compute patterns.
func (c *Cache) GetOrCompute(key string, ttl time.Duration, fn func() (any, error)) (any, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Another caller may have populated the key while we waited.
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := fn()
		if err != nil {
			return nil, err
		}
		c.Set(key, v, ttl)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Forget drops a single key.
func (c *Cache) Forget(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Clear drops every key.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.items = make(map[string]entry)
	c.mu.Unlock()
}
