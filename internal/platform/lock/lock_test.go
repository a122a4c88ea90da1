package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLocalLocker_ExclusiveUntilRelease(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLocker()

	token, ok, err := l.TryLock(ctx, "tick", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = l.TryLock(ctx, "tick", time.Minute)
	require.NoError(t, err)
	require.False(t, ok)

	// A stale token must not free the lock.
	require.NoError(t, l.Release(ctx, "tick", "someone-else"))
	_, ok, _ = l.TryLock(ctx, "tick", time.Minute)
	require.False(t, ok)

	require.NoError(t, l.Release(ctx, "tick", token))
	_, ok, err = l.TryLock(ctx, "tick", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestLocalLocker_ExpiredLeaseCanBeTaken(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLocalLocker()
	l.now = func() time.Time { return now }

	_, ok, err := l.TryLock(ctx, "tick", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, err = l.TryLock(ctx, "tick", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestLocalLocker_Validation(t *testing.T) {
	l := NewLocalLocker()
	_, _, err := l.TryLock(context.Background(), "", time.Minute)
	require.ErrorIs(t, err, ErrEmptyKey)
	_, _, err = l.TryLock(context.Background(), "k", 0)
	require.ErrorIs(t, err, ErrInvalidTTL)
}

func TestRedisLocker_NotConfigured(t *testing.T) {
	var l *RedisLocker
	_, ok, err := l.TryLock(context.Background(), "k", time.Minute)
	require.Error(t, err)
	require.False(t, ok)
	require.NoError(t, l.Release(context.Background(), "k", "t"))
}
