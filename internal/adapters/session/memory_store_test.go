package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(ttl time.Duration) (*MemoryStore, *time.Time) {
	clock := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewMemoryStore(ttl, contextkeys.LoggerFromContext(context.Background()))
	s.now = func() time.Time { return clock }
	return s, &clock
}

func TestMemoryStore_PushKeepsRecencyOrder(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	ctx := context.Background()
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	for _, id := range []uuid.UUID{a, b, c, a} {
		require.NoError(t, s.Push(ctx, "session-1", id))
	}

	got, err := s.List(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, c, b}, got)

	other, err := s.List(ctx, "session-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestMemoryStore_CapsAtLimit(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	ctx := context.Background()

	var last uuid.UUID
	for i := 0; i < domain.RecentlyViewedLimit+5; i++ {
		last = uuid.New()
		require.NoError(t, s.Push(ctx, "k", last))
	}

	got, _ := s.List(ctx, "k")
	assert.Len(t, got, domain.RecentlyViewedLimit)
	assert.Equal(t, last, got[0])
}

func TestMemoryStore_ExpiresIdleSessions(t *testing.T) {
	s, clock := newTestStore(30 * time.Minute)
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, s.Push(ctx, "idle", id))
	require.NoError(t, s.Push(ctx, "active", id))

	*clock = clock.Add(20 * time.Minute)
	require.NoError(t, s.Push(ctx, "active", id))

	*clock = clock.Add(20 * time.Minute)
	got, _ := s.List(ctx, "idle")
	assert.Empty(t, got)

	assert.Equal(t, 1, s.Cleanup())
	got, _ = s.List(ctx, "active")
	assert.Equal(t, []uuid.UUID{id}, got)
}

func TestMemoryStore_ListReturnsCopy(t *testing.T) {
	s, _ := newTestStore(0)
	ctx := context.Background()
	id := uuid.New()
	require.NoError(t, s.Push(ctx, "k", id))

	got, _ := s.List(ctx, "k")
	got[0] = uuid.Nil

	again, _ := s.List(ctx, "k")
	assert.Equal(t, id, again[0])
}
