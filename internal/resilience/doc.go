// Package resilience groups the fault tolerance helpers used around the
// database, the page cache and the event bus.
//
//   - circuitbreaker wraps calls with gobreaker so a failing dependency fails fast.
//   - retry retries transient failures with exponential backoff and jitter.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.PageCache())
//	page, err := circuitbreaker.Call(cb, func() ([]byte, error) {
//	    return client.Get(ctx, key).Bytes()
//	})
//
//	err := retry.WithBackoff(ctx, retry.StartupConfig(), func() error {
//	    return database.PingContext(ctx)
//	})
package resilience
