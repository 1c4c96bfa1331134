// Package worker holds the settings, metrics and health endpoints of the
// background statistics worker.
package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"yatube/pkg/config"
)

// WorkerConfig configures the statistics worker.
type WorkerConfig struct {
	// StatsSchedule is the cron spec of the statistics refresh job.
	StatsSchedule string
	// Timezone the schedule is interpreted in.
	Timezone string
	// JobTimeout bounds a single refresh.
	JobTimeout time.Duration
	// Addr serves /health, /health/ready and /metrics.
	Addr string
}

// DefaultConfig refreshes statistics every minute.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		StatsSchedule: "@every 1m",
		Timezone:      "UTC",
		JobTimeout:    30 * time.Second,
		Addr:          ":9091",
	}
}

// Validate reports every invalid field.
func (c *WorkerConfig) Validate() error {
	var errs []error
	if err := config.ValidateCronSchedule(c.StatsSchedule); err != nil {
		errs = append(errs, fmt.Errorf("stats schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateDurationRange(c.JobTimeout, time.Second, 10*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("job timeout: %w", err))
	}
	if c.Addr == "" {
		errs = append(errs, errors.New("addr cannot be empty"))
	}
	return errors.Join(errs...)
}

// LoadConfigFromEnv reads the worker settings. A value that fails
// validation is replaced by its default, logged and counted, so the worker
// always starts.
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) *WorkerConfig {
	def := DefaultConfig()
	cfg := WorkerConfig{
		StatsSchedule: config.GetEnvString("STATS_SCHEDULE", def.StatsSchedule),
		Timezone:      config.GetEnvString("WORKER_TIMEZONE", def.Timezone),
		JobTimeout:    config.GetEnvDuration("STATS_JOB_TIMEOUT", def.JobTimeout),
		Addr:          config.GetEnvString("WORKER_ADDR", def.Addr),
	}

	fallback := func(field string, err error) {
		logger.Warn("configuration fallback applied",
			slog.String("field", field),
			slog.String("error", err.Error()))
		metrics.RecordFallback(field)
	}
	if err := config.ValidateCronSchedule(cfg.StatsSchedule); err != nil {
		fallback("stats_schedule", err)
		cfg.StatsSchedule = def.StatsSchedule
	}
	if err := config.ValidateTimezone(cfg.Timezone); err != nil {
		fallback("timezone", err)
		cfg.Timezone = def.Timezone
	}
	if err := config.ValidateDurationRange(cfg.JobTimeout, time.Second, 10*time.Minute); err != nil {
		fallback("job_timeout", err)
		cfg.JobTimeout = def.JobTimeout
	}
	return &cfg
}
