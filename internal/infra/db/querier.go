package db

import (
	"context"
	"database/sql"
)

// Querier is the subset of *sql.DB the repositories use.
// circuitbreaker.DB satisfies it as well.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
