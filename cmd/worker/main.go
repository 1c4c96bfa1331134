package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"yatube/internal/infra/adapter/persistence"
	"yatube/internal/infra/db"
	workerPkg "yatube/internal/infra/worker"
	"yatube/internal/observability/logging"
	"yatube/internal/resilience/circuitbreaker"
	"yatube/internal/resilience/retry"
	"yatube/internal/usecase/stats"
	envconfig "yatube/pkg/config"
)

// waitForMigrations blocks until the API has created the schema.
func waitForMigrations(ctx context.Context, logger *slog.Logger, database *sql.DB) {
	const check = "SELECT 1 FROM posts LIMIT 1"
	cfg := retry.StartupConfig()
	cfg.RetryIf = retry.UnlessContextError
	err := retry.WithBackoff(ctx, cfg, func() error {
		_, err := database.ExecContext(ctx, check)
		return err
	})
	if err != nil {
		logger.Error("migrations did not complete in time", slog.Any("error", err))
		os.Exit(1)
	}
}

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dialect, database := initDatabase(ctx, logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	// Invalid settings fall back to defaults and are counted.
	workerMetrics := workerPkg.NewWorkerMetrics(prometheus.DefaultRegisterer)
	cfg := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	logger.Info("worker configuration loaded",
		slog.String("stats_schedule", cfg.StatsSchedule),
		slog.String("timezone", cfg.Timezone),
		slog.Duration("job_timeout", cfg.JobTimeout),
		slog.String("addr", cfg.Addr))

	repos, err := persistence.New(dialect, circuitbreaker.WrapDB(database))
	if err != nil {
		logger.Error("failed to build repositories", slog.Any("error", err))
		os.Exit(1)
	}
	svc := &stats.Service{
		Posts:   repos.Posts,
		Groups:  repos.Groups,
		Users:   repos.Users,
		Follows: repos.Follows,
		Logger:  logger,
	}

	healthServer := workerPkg.NewHealthServer(cfg.Addr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	job := workerPkg.Job{
		Name: "refresh_stats",
		Fn: func(ctx context.Context) error {
			_, err := svc.Refresh(ctx)
			return err
		},
		Timeout: cfg.JobTimeout,
		Metrics: workerMetrics,
		Logger:  logger,
	}

	runScheduler(ctx, logger, cfg, job, healthServer)
}

// initDatabase opens the database named by DB_DRIVER and DATABASE_URL.
func initDatabase(ctx context.Context, logger *slog.Logger) (db.Dialect, *sql.DB) {
	dialect, err := db.ParseDialect(envconfig.GetEnvString("DB_DRIVER", string(db.Postgres)))
	if err != nil {
		logger.Error("invalid DB_DRIVER", slog.Any("error", err))
		os.Exit(1)
	}
	database, err := db.Open(ctx, dialect, envconfig.GetEnvString("DATABASE_URL", ""))
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	waitForMigrations(ctx, logger, database)
	return dialect, database
}

// runScheduler runs the stats job once, then on schedule until ctx is done.
func runScheduler(ctx context.Context, logger *slog.Logger, cfg *workerPkg.WorkerConfig, job workerPkg.Job, healthServer *workerPkg.HealthServer) {
	c, err := workerPkg.NewScheduler(cfg, job)
	if err != nil {
		logger.Error("failed to create scheduler", slog.Any("error", err))
		os.Exit(1)
	}

	job.Run()
	c.Start()
	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", cfg.StatsSchedule),
		slog.String("timezone", cfg.Timezone))

	<-ctx.Done()
	healthServer.SetReady(false)
	logger.Info("stopping worker, waiting for running jobs")
	<-c.Stop().Done()
	logger.Info("worker stopped")
}
