package service

import (
	"context"
	"sync"
	"time"

	"codesift/internal/services/search/domain"
)

// DefaultCacheTTL matches the original idle window for cached result pages
const DefaultCacheTTL = 60 * time.Second

type cacheEntry struct {
	val     *domain.SearchResult
	expires time.Time
}

// ResultCache maps query signatures to result pages with a sliding TTL:
// every Get refreshes the timer, so a hot key never expires and an idle
// key dies exactly one window after its last touch.
// MaxEntries bounds memory under high query cardinality; zero means
// unbounded like the original
type ResultCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	max     int
	now     func() time.Time
	entries map[string]*cacheEntry
}

// NewResultCache builds a cache with the given window and capacity bound
func NewResultCache(ttl time.Duration, maxEntries int) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ResultCache{
		ttl:     ttl,
		max:     maxEntries,
		now:     time.Now,
		entries: make(map[string]*cacheEntry),
	}
}

// Get returns the cached result and slides its expiry forward.
// An entry past its window is treated as absent and dropped
func (c *ResultCache) Get(key string) (*domain.SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	now := c.now()
	if now.After(e.expires) {
		delete(c.entries, key)
		return nil, false
	}
	e.expires = now.Add(c.ttl)
	return e.val, true
}

// Put inserts or replaces an entry and starts its window. When the cache
// is full the entry closest to expiry makes room
func (c *ResultCache) Put(key string, val *domain.SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && c.max > 0 && len(c.entries) >= c.max {
		c.evictSoonestLocked()
	}
	c.entries[key] = &cacheEntry{val: val, expires: c.now().Add(c.ttl)}
}

// Len reports live entries, counting expired ones not yet swept
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Sweep drops every expired entry and reports how many went
func (c *ResultCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	var n int
	for k, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Run sweeps periodically until ctx is done. Expired entries are already
// invisible to Get; this just returns their memory
func (c *ResultCache) Run(ctx context.Context) error {
	t := time.NewTicker(c.ttl / 2)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			c.Sweep()
		}
	}
}

func (c *ResultCache) evictSoonestLocked() {
	var victim string
	var soonest time.Time
	first := true
	for k, e := range c.entries {
		if first || e.expires.Before(soonest) {
			victim, soonest, first = k, e.expires, false
		}
	}
	if !first {
		delete(c.entries, victim)
	}
}
