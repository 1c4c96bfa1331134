// Package middleware holds the outer HTTP middleware: CORS and security headers.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/cors"
)

// CORSConfig configures cross-origin access.
type CORSConfig struct {
	AllowedOrigins []string
	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int
}

// ValidateOrigins checks that each origin is a bare scheme://host[:port].
func ValidateOrigins(origins []string) error {
	for _, origin := range origins {
		if origin == "*" {
			return fmt.Errorf("wildcard origin is not allowed with credentials")
		}
		u, err := url.Parse(origin)
		if err != nil {
			return fmt.Errorf("invalid origin URL '%s': %w", origin, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("origin must use http or https scheme: %s", origin)
		}
		if u.Host == "" {
			return fmt.Errorf("origin must include a host: %s", origin)
		}
		if (u.Path != "" && u.Path != "/") || u.RawQuery != "" || u.Fragment != "" {
			return fmt.Errorf("origin must not include path, query or fragment: %s", origin)
		}
		if strings.HasSuffix(origin, "/") {
			return fmt.Errorf("origin must not have trailing slash: %s", origin)
		}
	}
	return nil
}

// CORS returns the cross-origin middleware. With no configured origins every
// cross-origin request is refused, which leaves same-origin use unaffected.
// Credentials are allowed so the session cookie travels with requests.
func CORS(cfg CORSConfig, logger *slog.Logger) (func(http.Handler) http.Handler, error) {
	if err := ValidateOrigins(cfg.AllowedOrigins); err != nil {
		return nil, fmt.Errorf("cors: %w", err)
	}
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = 600
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id", "traceparent", "tracestate"},
		ExposedHeaders:   []string{"X-Request-Id", "X-Trace-Id", "X-Cache", "Location"},
		AllowCredentials: true,
		MaxAge:           maxAge,
	})
	logger.Info("CORS configured",
		slog.Int("allowed_origins_count", len(cfg.AllowedOrigins)),
		slog.Any("allowed_origins", cfg.AllowedOrigins))
	return c.Handler, nil
}
