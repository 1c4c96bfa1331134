package middleware

import (
	"net/http"

	"yatube/pkg/security/csp"
)

// SecurityHeaders sets the content security policy and headers that stop
// browsers from sniffing or framing responses. The policy is built once.
func SecurityHeaders(policy *csp.CSPBuilder) func(http.Handler) http.Handler {
	name, value := policy.HeaderName(), policy.Build()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if value != "" {
				h.Set(name, value)
			}
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "same-origin")
			next.ServeHTTP(w, r)
		})
	}
}
