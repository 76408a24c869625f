package cache

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/ppiankov/douessay/internal/model"
)

// Stats counts lookups served by each cache layer
type Stats struct {
	MemoryHits int64 `json:"memory_hits"`
	DiskHits   int64 `json:"disk_hits"`
	Misses     int64 `json:"misses"`
	Dropped    int64 `json:"dropped"`
}

// HitRate returns the share of lookups served from either layer
func (s Stats) HitRate() float64 {
	total := s.MemoryHits + s.DiskHits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.MemoryHits+s.DiskHits) / float64(total)
}

// LayeredCache checks memory before disk and promotes disk hits into memory
type LayeredCache struct {
	memory *MemoryCache
	disk   Cache

	memoryHits atomic.Int64
	diskHits   atomic.Int64
	misses     atomic.Int64
}

// NewLayeredCache builds memory and disk layers from config. An empty Dir
// keeps results in memory only
func NewLayeredCache(cfg model.CacheConfig) *LayeredCache {
	c := &LayeredCache{
		memory: NewBoundedMemoryCache(cfg.MemoryTTL, 10*time.Minute, cfg.MaxEntries),
		disk:   Noop{},
	}
	if cfg.Dir != "" {
		c.disk = NewDiskCache(cfg.Dir, cfg.DiskTTL)
	}
	return c
}

func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		c.memoryHits.Add(1)
		return val, true
	}
	val, found := c.disk.Get(key)
	if !found {
		c.misses.Add(1)
		return nil, false
	}
	c.diskHits.Add(1)
	_ = c.memory.Set(key, val, 0)
	return val, true
}

// Set writes through to both layers
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, value, ttl)
}

func (c *LayeredCache) Delete(key string) error {
	return errors.Join(c.memory.Delete(key), c.disk.Delete(key))
}

func (c *LayeredCache) Clear() error {
	return errors.Join(c.memory.Clear(), c.disk.Clear())
}

// Stats returns a snapshot of lookup counters
func (c *LayeredCache) Stats() Stats {
	return Stats{
		MemoryHits: c.memoryHits.Load(),
		DiskHits:   c.diskHits.Load(),
		Misses:     c.misses.Load(),
		Dropped:    c.memory.Dropped(),
	}
}
