package reminder

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingTicker struct {
	calls atomic.Int32
	err   error
}

func (c *countingTicker) RunTick(context.Context) (*Summary, error) {
	c.calls.Add(1)
	return newSummary(), c.err
}

func TestScheduler_RunsUntilCancelled(t *testing.T) {
	ticker := &countingTicker{err: ErrTickInProgress}
	s := NewScheduler(ticker, 5*time.Millisecond, zap.NewNop().Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return ticker.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
