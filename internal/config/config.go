// Package config assembles the application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"time"

	"yatube/internal/common/pagination"
	"yatube/internal/infra/db"
	envconfig "yatube/pkg/config"
)

// Cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// MinJWTSecretLength is the shortest accepted session signing key.
const MinJWTSecretLength = 32

// AppConfig holds everything cmd/api needs to start.
type AppConfig struct {
	HTTPAddr    string
	Version     string
	LogLevel    string
	DBDialect   db.Dialect
	DatabaseURL string

	JWTSecret    string
	SessionTTL   time.Duration
	SecureCookie bool

	IndexCacheTTL time.Duration
	CacheBackend  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// NATSURL is optional; events are dropped when it is empty.
	NATSURL string

	LoginRatePerSecond float64
	LoginRateBurst     int
	// TrustedProxies may set X-Forwarded-For; empty means RemoteAddr only.
	TrustedProxies []netip.Prefix

	CORSAllowedOrigins []string
	CSPReportOnly      bool
	MaxBodyBytes       int64
	ShutdownTimeout    time.Duration

	Pagination pagination.Config
}

// Load reads AppConfig from the environment and validates it.
func Load() (*AppConfig, error) {
	dialect, err := db.ParseDialect(envconfig.GetEnvString("DB_DRIVER", string(db.Postgres)))
	if err != nil {
		return nil, fmt.Errorf("DB_DRIVER: %w", err)
	}

	proxies, err := ParseTrustedProxies(envconfig.GetEnvStringList("TRUSTED_PROXIES", nil))
	if err != nil {
		return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}

	cfg := &AppConfig{
		HTTPAddr:    envconfig.GetEnvString("HTTP_ADDR", ":8080"),
		Version:     envconfig.GetEnvString("VERSION", "dev"),
		LogLevel:    envconfig.GetEnvString("LOG_LEVEL", "info"),
		DBDialect:   dialect,
		DatabaseURL: envconfig.GetEnvString("DATABASE_URL", ""),

		JWTSecret:    envconfig.GetEnvString("JWT_SECRET", ""),
		SessionTTL:   envconfig.GetEnvDuration("SESSION_TTL", 24*time.Hour),
		SecureCookie: envconfig.GetEnvBool("SESSION_COOKIE_SECURE", false),

		IndexCacheTTL: envconfig.GetEnvDuration("INDEX_CACHE_TTL", 20*time.Second),
		CacheBackend:  envconfig.GetEnvString("CACHE_BACKEND", CacheMemory),
		RedisAddr:     envconfig.GetEnvString("REDIS_ADDR", "localhost:6379"),
		RedisPassword: envconfig.GetEnvString("REDIS_PASSWORD", ""),
		RedisDB:       envconfig.GetEnvInt("REDIS_DB", 0),

		NATSURL: envconfig.GetEnvString("NATS_URL", ""),

		LoginRatePerSecond: envconfig.GetEnvFloat("LOGIN_RATE_PER_SECOND", 0.2),
		LoginRateBurst:     envconfig.GetEnvInt("LOGIN_RATE_BURST", 5),
		TrustedProxies:     proxies,

		CORSAllowedOrigins: envconfig.GetEnvStringList("CORS_ALLOWED_ORIGINS", nil),
		CSPReportOnly:      envconfig.GetEnvBool("CSP_REPORT_ONLY", false),
		MaxBodyBytes:       int64(envconfig.GetEnvInt("MAX_BODY_BYTES", 10<<20)),
		ShutdownTimeout:    envconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		Pagination: pagination.LoadFromEnv(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *AppConfig) Validate() error {
	var errs []error

	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("HTTP_ADDR cannot be empty"))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if len(c.JWTSecret) < MinJWTSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d characters", MinJWTSecretLength))
	}
	if err := envconfig.ValidatePositiveDuration(c.SessionTTL); err != nil {
		errs = append(errs, fmt.Errorf("SESSION_TTL: %w", err))
	}
	if err := envconfig.ValidatePositiveDuration(c.IndexCacheTTL); err != nil {
		errs = append(errs, fmt.Errorf("INDEX_CACHE_TTL: %w", err))
	}
	switch c.CacheBackend {
	case CacheMemory:
	case CacheRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required when CACHE_BACKEND=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("CACHE_BACKEND must be %q or %q, got %q", CacheMemory, CacheRedis, c.CacheBackend))
	}
	if c.LoginRatePerSecond <= 0 {
		errs = append(errs, errors.New("LOGIN_RATE_PER_SECOND must be positive"))
	}
	if err := envconfig.ValidateIntRange(c.LoginRateBurst, 1, 1000); err != nil {
		errs = append(errs, fmt.Errorf("LOGIN_RATE_BURST: %w", err))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must be positive"))
	}
	if c.Pagination.PageSize <= 0 {
		errs = append(errs, errors.New("PAGINATION_PAGE_SIZE must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// ParseTrustedProxies accepts CIDRs and bare addresses, which become
// single-host prefixes.
func ParseTrustedProxies(list []string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, item := range list {
		if item == "" {
			continue
		}
		if prefix, err := netip.ParsePrefix(item); err == nil {
			out = append(out, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(item)
		if err != nil {
			return nil, fmt.Errorf("invalid IP or CIDR %q", item)
		}
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}
