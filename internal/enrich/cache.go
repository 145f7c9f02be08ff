package enrich

import (
	"sync"
	"time"
)

// cacheEntry represents a cached enrichment profile.
type cacheEntry struct {
	expiry  time.Time
	profile ProfileResponse
}

// profileCache provides thread-safe caching of enrichment responses so a
// retried run never pays twice for the same candidate within the TTL.
type profileCache struct {
	entries map[string]cacheEntry
	stopCh  chan struct{}
	ttl     time.Duration
	mu      sync.RWMutex
}

// newProfileCache creates a new cache with the specified TTL.
func newProfileCache(ttl time.Duration) *profileCache {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}

	cache := &profileCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go cache.cleanup()

	return cache
}

// get retrieves a profile from the cache if it exists and hasn't expired.
func (c *profileCache) get(key string) (ProfileResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists {
		return ProfileResponse{}, false
	}

	if time.Now().After(entry.expiry) {
		return ProfileResponse{}, false
	}

	return entry.profile, true
}

// set stores a profile in the cache.
func (c *profileCache) set(key string, profile ProfileResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		profile: profile,
		expiry:  time.Now().Add(c.ttl),
	}
}

// cleanup periodically removes expired entries.
func (c *profileCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.entries {
				if now.After(entry.expiry) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// size returns the number of entries in the cache.
func (c *profileCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the cleanup goroutine.
func (c *profileCache) Close() {
	close(c.stopCh)
}
