package worker_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aolivares/school-library-service/internal/worker"
)

type countingExpirer struct {
	calls int64
}

func (c *countingExpirer) ExpireDueReservations(context.Context) (int, error) {
	atomic.AddInt64(&c.calls, 1)
	return 0, nil
}

func TestSweeper_Run(t *testing.T) {
	t.Parallel()

	exp := &countingExpirer{}
	sw := worker.NewSweeper(exp, 10*time.Millisecond, zap.NewExample())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- sw.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&exp.calls) >= 2
	}, time.Second, 5*time.Millisecond, "expected the immediate sweep plus at least one tick")

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on cancel")
	}
}
