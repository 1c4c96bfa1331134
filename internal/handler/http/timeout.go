package http

import (
	"context"
	"net/http"
	"time"
)

// DefaultRequestTimeout bounds the store work of a single request.
const DefaultRequestTimeout = 15 * time.Second

// Timeout returns middleware that attaches a deadline to the request context.
// Repository calls observe the deadline and fail with context.DeadlineExceeded,
// which handlers report as an internal error.
func Timeout(d time.Duration) Middleware {
	if d <= 0 {
		d = DefaultRequestTimeout
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
