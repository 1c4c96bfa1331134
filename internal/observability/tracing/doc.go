// Package tracing provides OpenTelemetry tracing integration.
//
// The HTTP middleware extracts W3C trace context from incoming requests,
// starts a server span per request and echoes the trace id in the
// X-Trace-Id response header. The same propagator is used by the event
// publisher so consumers of post and follow events join the request trace.
//
// Example usage:
//
//	import "yatube/internal/observability/tracing"
//
//	func main() {
//	    tracing.InitPropagator()
//	    handler := tracing.Middleware(mux)
//	}
//
//	func loadFeed(ctx context.Context) {
//	    ctx, span := tracing.Tracer().Start(ctx, "feed.global")
//	    defer span.End()
//	    // ...
//	}
package tracing
