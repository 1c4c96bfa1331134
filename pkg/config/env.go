// Package config reads typed settings from environment variables.
// Malformed values never abort startup: the default is used and a warning logged.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the variable or defaultValue when it is unset or empty.
//
// Example:
//
//	addr := GetEnvString("HTTP_ADDR", ":8080")
func GetEnvString(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func warnInvalid(key, value, kind string, defaultValue any, err error) {
	attrs := []any{
		slog.String("key", key),
		slog.String("value", value),
		slog.Any("default", defaultValue),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	slog.Warn("invalid "+kind+" value for environment variable, using default", attrs...)
}

// GetEnvInt returns the variable parsed as an integer.
func GetEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		warnInvalid(key, raw, "integer", defaultValue, err)
		return defaultValue
	}
	return value
}

// GetEnvFloat returns the variable parsed as a float.
func GetEnvFloat(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		warnInvalid(key, raw, "float", defaultValue, err)
		return defaultValue
	}
	return value
}

// GetEnvBool returns the variable parsed with strconv.ParseBool.
//
// Example:
//
//	secure := GetEnvBool("SESSION_COOKIE_SECURE", false)
func GetEnvBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		warnInvalid(key, raw, "boolean", defaultValue, nil)
		return defaultValue
	}
	return value
}

// GetEnvDuration returns the variable parsed by time.ParseDuration ("20s", "1h30m").
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		warnInvalid(key, raw, "duration", defaultValue.String(), err)
		return defaultValue
	}
	return value
}

// GetEnvStringList splits a comma separated variable, trimming and dropping
// empty items. An unset or all-empty variable yields defaultValue.
//
// Example:
//
//	// CORS_ALLOWED_ORIGINS="https://a.example, https://b.example"
//	origins := GetEnvStringList("CORS_ALLOWED_ORIGINS", nil)
func GetEnvStringList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
