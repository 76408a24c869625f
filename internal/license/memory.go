package license

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps licenses in memory with daily counters that expire at UTC midnight
type MemoryStore struct {
	mu       sync.Mutex
	licenses map[string]Tier
	usage    *gocache.Cache
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		licenses: make(map[string]Tier),
		usage:    gocache.New(gocache.NoExpiration, 10*time.Minute),
		now:      time.Now,
	}
}

// Add registers a key
func (m *MemoryStore) Add(_ context.Context, key string, tier Tier) error {
	if _, err := ParseTier(string(tier)); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.licenses[key] = tier
	return nil
}

// Validate returns the key's tier and today's usage
func (m *MemoryStore) Validate(_ context.Context, key string) (Validation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tier, ok := m.licenses[key]
	if !ok {
		return Validation{}, ErrUnknownKey
	}
	return validation(tier, m.count(key)), nil
}

// IncrementUsage counts one use; it returns false when the daily limit was already reached
func (m *MemoryStore) IncrementUsage(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tier, ok := m.licenses[key]
	if !ok {
		return false, ErrUnknownKey
	}
	limit := Plans[tier].DailyLimit
	used := m.count(key)
	if limit != Unlimited && used >= limit {
		return false, nil
	}

	now := m.now()
	m.usage.Set(usageKey(key, now), used+1, untilMidnight(now))
	return true, nil
}

func (m *MemoryStore) count(key string) int {
	if v, ok := m.usage.Get(usageKey(key, m.now())); ok {
		if n, ok := v.(int); ok {
			return n
		}
	}
	return 0
}

func usageKey(key string, t time.Time) string {
	return key + ":" + day(t)
}
