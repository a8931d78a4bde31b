// Package cache provides a small in-memory TTL cache for the knowledge
// base listing, which UI clients poll aggressively while the underlying
// collection changes rarely.
package cache

import (
	"sync"
	"time"

	"emailogan/internal/models"
)

// DefaultTTL is how long a cached listing stays fresh.
const DefaultTTL = 30 * time.Second

type item struct {
	listing   models.ListResponse
	expiresAt time.Time
}

// ListingCache caches knowledge base listings by key with expiration.
type ListingCache struct {
	items map[string]item
	mutex sync.RWMutex
}

// New creates a new listing cache.
func New() *ListingCache {
	return &ListingCache{
		items: make(map[string]item),
	}
}

// Get retrieves a fresh listing, reporting whether one was found.
func (c *ListingCache) Get(key string) (models.ListResponse, bool) {
	c.mutex.RLock()
	cached, exists := c.items[key]
	c.mutex.RUnlock()

	if !exists || time.Now().After(cached.expiresAt) {
		return models.ListResponse{}, false
	}

	return cached.listing, true
}

// Set stores a listing with the given TTL.
func (c *ListingCache) Set(key string, listing models.ListResponse, ttl time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[key] = item{
		listing:   listing,
		expiresAt: time.Now().Add(ttl),
	}
}

// Invalidate removes every cached listing. Called after any mutation of
// the vector store so stale listings never outlive a write.
func (c *ListingCache) Invalidate() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.items = make(map[string]item)
}
