// Package observability holds the logging, metrics and tracing support shared
// by cmd/api and cmd/worker.
//
// logging configures slog. metrics registers the Prometheus collectors served
// on /metrics. tracing installs the W3C propagator and starts a server span
// per request; database and Redis spans come from otelpgx and redisotel.
package observability
