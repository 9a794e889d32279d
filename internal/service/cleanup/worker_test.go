package cleanup

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingSweeper struct {
	calls   atomic.Int32
	maxIdle atomic.Int64
}

func (s *countingSweeper) CleanupStale(maxIdle time.Duration) int {
	s.calls.Add(1)
	s.maxIdle.Store(int64(maxIdle))
	return 1
}

func TestNewWorkerInterval(t *testing.T) {
	assert.Equal(t, time.Minute, NewWorker(&countingSweeper{}, time.Hour).Interval)
	assert.Equal(t, 5*time.Second, NewWorker(&countingSweeper{}, 20*time.Second).Interval)
	assert.Equal(t, time.Minute, NewWorker(&countingSweeper{}, 0).Interval)
}

func TestWorkerSweepsUntilCancelled(t *testing.T) {
	sweeper := &countingSweeper{}
	w := &Worker{Sessions: sweeper, MaxIdle: 3 * time.Minute, Interval: 5 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, time.Second, time.Millisecond)
	assert.Equal(t, int64(3*time.Minute), sweeper.maxIdle.Load())

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
