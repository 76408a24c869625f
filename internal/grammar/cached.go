package grammar

import (
	"context"
	"encoding/json"

	"github.com/ppiankov/douessay/internal/cache"
)

// Cached wraps a checker and stores its results keyed by language and text
type Cached struct {
	next     Checker
	store    cache.Cache
	language string
}

// NewCached creates a caching checker
func NewCached(next Checker, store cache.Cache, language string) *Cached {
	return &Cached{next: next, store: store, language: language}
}

// Check returns the cached issues or delegates and caches successful results
func (c *Cached) Check(ctx context.Context, text string) ([]Issue, error) {
	key := cache.Key("grammar", c.language, text)

	if data, ok := c.store.Get(key); ok {
		var issues []Issue
		if err := json.Unmarshal(data, &issues); err == nil {
			return issues, nil
		}
		_ = c.store.Delete(key)
	}

	issues, err := c.next.Check(ctx, text)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(issues); err == nil {
		_ = c.store.Set(key, data, 0)
	}
	return issues, nil
}
