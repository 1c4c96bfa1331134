package http

import (
	"context"
	"log/slog"
	"time"
)

// DefaultSweepInterval is how often expired page cache entries are dropped.
const DefaultSweepInterval = time.Minute

// Sweeper drops expired entries and reports how many it removed.
type Sweeper interface {
	Sweep() int
}

// StartSweeper calls s.Sweep every interval until ctx is cancelled.
// It blocks; run it in its own goroutine.
func StartSweeper(ctx context.Context, s Sweeper, interval time.Duration, name string, logger *slog.Logger) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("sweeper started",
		slog.String("name", name),
		slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			logger.Info("sweeper stopped", slog.String("name", name))
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				logger.Debug("sweep completed",
					slog.String("name", name),
					slog.Int("removed", removed))
			}
		}
	}
}
