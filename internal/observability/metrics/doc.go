// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Business metrics (posts, groups, users, follows)
//   - Page cache metrics
//   - Database query metrics
//
// All metrics are registered with the Prometheus default registry and exposed
// via the /metrics endpoint.
//
// Example usage:
//
//	import "yatube/internal/observability/metrics"
//
//	func createPost() {
//	    start := time.Now()
//	    // ... insert the post ...
//	    metrics.RecordPostCreated()
//	    metrics.RecordDBQuery("insert_post", time.Since(start))
//	}
package metrics
