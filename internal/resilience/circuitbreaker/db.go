package circuitbreaker

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"yatube/internal/observability/metrics"
)

// DB guards a connection pool with a Breaker and records query latency by
// statement verb. It satisfies db.Querier.
type DB struct {
	br   *Breaker
	pool *sql.DB
}

// WrapDB guards pool with the Database configuration.
func WrapDB(pool *sql.DB) *DB {
	return WrapDBWith(pool, Database())
}

func WrapDBWith(pool *sql.DB, cfg Config) *DB {
	return &DB{br: New(cfg), pool: pool}
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	defer observe(query, time.Now())
	return Call(d.br, func() (*sql.Rows, error) {
		return d.pool.QueryContext(ctx, query, args...)
	})
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer observe(query, time.Now())
	return Call(d.br, func() (sql.Result, error) {
		return d.pool.ExecContext(ctx, query, args...)
	})
}

// QueryRowContext bypasses the breaker: *sql.Row defers its error to Scan.
// An open breaker still short-circuits the queries around it.
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	defer observe(query, time.Now())
	return d.pool.QueryRowContext(ctx, query, args...)
}

func (d *DB) PingContext(ctx context.Context) error {
	return d.br.Do(func() error { return d.pool.PingContext(ctx) })
}

// Breaker exposes the guard for health reporting.
func (d *DB) Breaker() *Breaker { return d.br }

// Pool returns the unguarded pool, for migrations and shutdown.
func (d *DB) Pool() *sql.DB { return d.pool }

func observe(query string, start time.Time) {
	metrics.RecordDBQuery(verb(query), time.Since(start))
}

// verb returns the lower-cased first keyword of query, e.g. "select".
func verb(query string) string {
	q := strings.TrimSpace(query)
	if i := strings.IndexAny(q, " \t\n("); i > 0 {
		q = q[:i]
	}
	if q == "" {
		return "unknown"
	}
	return strings.ToLower(q)
}
