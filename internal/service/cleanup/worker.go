package cleanup

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Sweeper drops sessions idle for longer than maxIdle and reports how many.
type Sweeper interface {
	CleanupStale(maxIdle time.Duration) int
}

type Worker struct {
	Sessions Sweeper
	MaxIdle  time.Duration
	Interval time.Duration
}

// NewWorker sweeps every quarter of maxIdle, but at least once a minute.
func NewWorker(sessions Sweeper, maxIdle time.Duration) *Worker {
	interval := maxIdle / 4
	if interval <= 0 || interval > time.Minute {
		interval = time.Minute
	}
	return &Worker{Sessions: sessions, MaxIdle: maxIdle, Interval: interval}
}

// Start runs the background ticker until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	log.Info().Str("component", "cleanup").Dur("interval", w.Interval).Msg("background worker started")

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("component", "cleanup").Msg("background worker stopped")
			return
		case <-ticker.C:
			w.runCleanup()
		}
	}
}

func (w *Worker) runCleanup() int {
	removed := w.Sessions.CleanupStale(w.MaxIdle)
	if removed > 0 {
		log.Info().Str("component", "cleanup").Int("removed", removed).Msg("removed idle sessions")
	}
	return removed
}
