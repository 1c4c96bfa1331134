// Package cache provides the key/value stores behind the rendered page cache.
// Entries expire a fixed duration after they are written and are never
// refreshed by reads.
package cache

import (
	"context"
	"time"
)

// Store is a byte-oriented key/value store with per-entry expiry.
type Store interface {
	// Get returns the value for key. ok is false for missing or expired entries.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set stores value under key until ttl has elapsed.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Pinger is implemented by stores that can report backend health.
type Pinger interface {
	Ping(ctx context.Context) error
}
