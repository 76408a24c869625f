package cache

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache holds recent grammar results in process. When maxEntries is
// set, new keys are dropped once the bound is reached and expired entries
// cannot be reclaimed
type MemoryCache struct {
	items      *gocache.Cache
	maxEntries int
	dropped    atomic.Int64
}

// NewMemoryCache creates an unbounded memory cache
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return NewBoundedMemoryCache(defaultTTL, cleanupInterval, 0)
}

// NewBoundedMemoryCache creates a memory cache holding at most maxEntries items
func NewBoundedMemoryCache(defaultTTL, cleanupInterval time.Duration, maxEntries int) *MemoryCache {
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &MemoryCache{
		items:      gocache.New(defaultTTL, cleanupInterval),
		maxEntries: maxEntries,
	}
}

// Get returns the stored bytes for key
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	val, found := c.items.Get(key)
	if !found {
		return nil, false
	}
	b, ok := val.([]byte)
	return b, ok
}

// Set stores value under key; a zero TTL uses the cache default
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	if c.full(key) {
		c.dropped.Add(1)
		return nil
	}
	c.items.Set(key, value, ttl)
	return nil
}

// full reports whether storing a new key would exceed the bound
func (c *MemoryCache) full(key string) bool {
	if c.maxEntries == 0 {
		return false
	}
	if _, exists := c.items.Get(key); exists {
		return false
	}
	if c.items.ItemCount() < c.maxEntries {
		return false
	}
	c.items.DeleteExpired()
	return c.items.ItemCount() >= c.maxEntries
}

func (c *MemoryCache) Delete(key string) error {
	c.items.Delete(key)
	return nil
}

func (c *MemoryCache) Clear() error {
	c.items.Flush()
	return nil
}

// Len counts stored items, including expired ones not yet collected
func (c *MemoryCache) Len() int {
	return c.items.ItemCount()
}

// Dropped counts writes skipped because the cache was full
func (c *MemoryCache) Dropped() int64 {
	return c.dropped.Load()
}
