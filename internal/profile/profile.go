// Package profile keeps per-student score history for progress feedback.
package profile

import (
	"context"
	"sync"
	"time"

	"github.com/ppiankov/douessay/internal/model"
)

// DefaultHistory is how many snapshots MemoryStore keeps per user
const DefaultHistory = 20

// Snapshot is one graded submission
type Snapshot struct {
	Scores     model.FactorScores `json:"scores"`
	Percentage float64            `json:"percentage"`
	Grade      model.GradeLevel   `json:"grade"`
	RecordedAt time.Time          `json:"recorded_at"`
}

// Store is an external keyed store of dimension history
type Store interface {
	Latest(ctx context.Context, user string) (Snapshot, bool, error)
	Append(ctx context.Context, user string, s Snapshot) error
	History(ctx context.Context, user string) ([]Snapshot, error)
}

// MemoryStore is an in-process Store
type MemoryStore struct {
	mu      sync.RWMutex
	limit   int
	history map[string][]Snapshot
}

// NewMemoryStore creates a store keeping up to limit snapshots per user
func NewMemoryStore(limit int) *MemoryStore {
	if limit <= 0 {
		limit = DefaultHistory
	}
	return &MemoryStore{limit: limit, history: make(map[string][]Snapshot)}
}

// Latest returns the most recent snapshot for the user
func (m *MemoryStore) Latest(_ context.Context, user string) (Snapshot, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h := m.history[user]
	if len(h) == 0 {
		return Snapshot{}, false, nil
	}
	return h[len(h)-1], true, nil
}

// Append records a snapshot, dropping the oldest beyond the limit
func (m *MemoryStore) Append(_ context.Context, user string, s Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	h := append(m.history[user], s)
	if len(h) > m.limit {
		h = h[len(h)-m.limit:]
	}
	m.history[user] = h
	return nil
}

// History returns a copy of the user's snapshots, oldest first
func (m *MemoryStore) History(_ context.Context, user string) ([]Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Snapshot, len(m.history[user]))
	copy(out, m.history[user])
	return out, nil
}
