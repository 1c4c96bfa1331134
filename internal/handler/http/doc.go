// Package http provides the cross-cutting HTTP middleware and operational
// endpoints of the web application: structured request logging, panic
// recovery, body limits, per-client rate limiting, request metrics and the
// health, readiness and liveness endpoints. Page handlers live in subpackages.
package http
