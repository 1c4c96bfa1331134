package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// authRequestsTotal counts login attempts by result.
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total login attempts by result",
		},
		[]string{"result"}, // result: success | failure | invalid_request | error
	)

	// authDuration tracks how long credential checks take.
	authDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auth_duration_seconds",
			Help:    "Login credential check duration",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	// sessionRejectedTotal counts presented sessions that were ignored.
	sessionRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_sessions_rejected_total",
			Help: "Session tokens rejected by reason",
		},
		[]string{"reason"},
	)
)

// RecordAuthRequest records a login attempt.
func RecordAuthRequest(result string) {
	authRequestsTotal.WithLabelValues(result).Inc()
}

// RecordAuthDuration records credential check duration.
func RecordAuthDuration(durationSeconds float64) {
	authDuration.Observe(durationSeconds)
}

// RecordSessionRejected records an ignored session token.
func RecordSessionRejected(reason string) {
	sessionRejectedTotal.WithLabelValues(reason).Inc()
}
