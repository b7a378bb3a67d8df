// Package cache provides a TTL cache for dataset listings, keyed by sort
// column. The original explorer cached API responses for ten minutes; this
// keeps the same behavior and additionally retains expired entries for one
// extra TTL window so stale data can be served while the source is down.
package cache

import (
	"sync"
	"time"

	"github.com/robwiederstein/statesexplorer/internal/core/states"
)

// =============================================================================
// Cache
// =============================================================================

// DefaultTTL matches the original explorer's ten-minute cache window.
const DefaultTTL = 10 * time.Minute

type entry struct {
	list      []states.State
	fetchedAt time.Time
}

// Cache is a TTL cache of state listings keyed by sort key.
// Safe for concurrent use.
type Cache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[states.SortKey]entry
	now     func() time.Time // swappable for tests
}

// New creates a cache with the given TTL. A zero TTL uses DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[states.SortKey]entry),
		now:     time.Now,
	}
}

// Get returns the cached listing for the key. fresh is false once the entry
// is older than the TTL; entries older than twice the TTL are dropped and
// reported as missing.
func (c *Cache) Get(key states.SortKey) (list []states.State, fetchedAt time.Time, fresh, ok bool) {
	c.mu.RLock()
	e, found := c.entries[key]
	c.mu.RUnlock()
	if !found {
		return nil, time.Time{}, false, false
	}

	age := c.now().Sub(e.fetchedAt)
	if age > 2*c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it.
		if cur, still := c.entries[key]; still && c.now().Sub(cur.fetchedAt) > 2*c.ttl {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, time.Time{}, false, false
	}

	return e.list, e.fetchedAt, age <= c.ttl, true
}

// Set stores a listing for the key, resetting its age.
func (c *Cache) Set(key states.SortKey, list []states.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{list: list, fetchedAt: c.now()}
}

// Invalidate removes all cached entries.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[states.SortKey]entry)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
