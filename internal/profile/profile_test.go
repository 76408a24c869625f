package profile

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/douessay/internal/model"
)

func TestMemoryStoreLatest(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)

	_, ok, err := s.Latest(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Append(ctx, "alice", Snapshot{Percentage: 70}))
	require.NoError(t, s.Append(ctx, "alice", Snapshot{Percentage: 75}))

	latest, ok, err := s.Latest(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 75.0, latest.Percentage)

	_, ok, _ = s.Latest(ctx, "bob")
	assert.False(t, ok)
}

func TestMemoryStoreTrimsHistory(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(3)
	for i := 1; i <= 5; i++ {
		require.NoError(t, s.Append(ctx, "u", Snapshot{Percentage: float64(i)}))
	}

	h, err := s.History(ctx, "u")
	require.NoError(t, err)
	require.Len(t, h, 3)
	assert.Equal(t, 3.0, h[0].Percentage)
	assert.Equal(t, 5.0, h[2].Percentage)

	h[0].Percentage = 99
	again, _ := s.History(ctx, "u")
	assert.Equal(t, 3.0, again[0].Percentage, "History must return a copy")
}

func TestMemoryStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(100)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Append(ctx, "u", Snapshot{Scores: model.FactorScores{Content: 7}})
		}()
	}
	wg.Wait()

	h, err := s.History(ctx, "u")
	require.NoError(t, err)
	assert.Len(t, h, 50)
}
