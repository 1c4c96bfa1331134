package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WorkerMetrics tracks the statistics job and configuration fallbacks.
type WorkerMetrics struct {
	JobRunsTotal         *prometheus.CounterVec
	JobDurationSeconds   prometheus.Histogram
	LastSuccessTimestamp prometheus.Gauge
	ConfigFallbacksTotal *prometheus.CounterVec
}

// NewWorkerMetrics registers the worker metrics with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewWorkerMetrics(reg prometheus.Registerer) *WorkerMetrics {
	factory := promauto.With(reg)
	return &WorkerMetrics{
		JobRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_stats_job_runs_total",
			Help: "Statistics job runs by status",
		}, []string{"status"}),
		JobDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_stats_job_duration_seconds",
			Help:    "Duration of statistics job runs",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}),
		LastSuccessTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "worker_stats_job_last_success_timestamp",
			Help: "Unix time of the last successful statistics job",
		}),
		ConfigFallbacksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_config_fallbacks_total",
			Help: "Configuration values replaced by their default",
		}, []string{"field"}),
	}
}

// RecordJobRun counts a job run with status success or failure.
func (m *WorkerMetrics) RecordJobRun(status string, seconds float64) {
	m.JobRunsTotal.WithLabelValues(status).Inc()
	m.JobDurationSeconds.Observe(seconds)
	if status == "success" {
		m.LastSuccessTimestamp.SetToCurrentTime()
	}
}

// RecordFallback counts a configuration fallback.
func (m *WorkerMetrics) RecordFallback(field string) {
	m.ConfigFallbacksTotal.WithLabelValues(field).Inc()
}
