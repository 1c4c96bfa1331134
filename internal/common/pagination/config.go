// Package pagination provides offset pagination for ordered post lists.
// Out-of-range page numbers are clamped to the nearest valid page instead of
// being rejected, so every request yields a renderable page.
package pagination

import (
	envconfig "yatube/pkg/config"
)

// Config holds pagination configuration settings.
type Config struct {
	PageSize  int    // Items per page (10 by default)
	PageParam string // Query parameter carrying the 1-based page number
}

// DefaultConfig returns the default pagination configuration.
// Default values: size=10, param=page
func DefaultConfig() Config {
	return Config{
		PageSize:  10,
		PageParam: "page",
	}
}

// LoadFromEnv loads pagination config from environment variables.
// Supported environment variables:
//   - PAGINATION_PAGE_SIZE: Items per page
//
// Falls back to DefaultConfig() if environment variables are not set or invalid.
func LoadFromEnv() Config {
	cfg := DefaultConfig()
	if size := envconfig.GetEnvInt("PAGINATION_PAGE_SIZE", cfg.PageSize); size > 0 {
		cfg.PageSize = size
	}
	return cfg
}
