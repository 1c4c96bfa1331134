package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"yatube/internal/handler/http/respond"
)

// JobFunc is one unit of scheduled work.
type JobFunc func(ctx context.Context) error

// Job runs fn with a timeout and records the outcome.
type Job struct {
	Name    string
	Fn      JobFunc
	Timeout time.Duration
	Metrics *WorkerMetrics
	Logger  *slog.Logger
}

// Run executes the job once. Failures are logged, never returned, so the
// scheduler keeps going.
func (j Job) Run() {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), j.Timeout)
	defer cancel()

	err := j.Fn(ctx)
	elapsed := time.Since(start)
	if err != nil {
		j.Logger.Error("job failed",
			slog.String("job", j.Name),
			slog.Duration("duration", elapsed),
			slog.String("error", respond.SanitizeError(err)))
		j.Metrics.RecordJobRun("failure", elapsed.Seconds())
		return
	}
	j.Metrics.RecordJobRun("success", elapsed.Seconds())
	j.Logger.Debug("job completed",
		slog.String("job", j.Name),
		slog.Duration("duration", elapsed))
}

// NewScheduler returns a cron scheduler in cfg's timezone with job registered.
// SkipIfStillRunning keeps slow runs from piling up.
func NewScheduler(cfg *WorkerConfig, job Job) (*cron.Cron, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddJob(cfg.StatsSchedule, job); err != nil {
		return nil, err
	}
	return c, nil
}
