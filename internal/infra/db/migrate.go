package db

import (
	"context"
	"database/sql"
	"fmt"
)

// MigrateUp creates every table and index that does not exist yet.
func MigrateUp(ctx context.Context, db *sql.DB, d Dialect) error {
	if d == SQLite {
		if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
			return fmt.Errorf("MigrateUp: enable foreign keys: %w", err)
		}
	}
	for _, stmt := range CreateStatements(d) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("MigrateUp: %w", err)
		}
	}
	return nil
}

// MigrateDown drops all tables in reverse dependency order.
// Use with caution: this will delete all data.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	for i := len(tables) - 1; i >= 0; i-- {
		stmt := "DROP TABLE IF EXISTS " + quoteIdent(tables[i].name)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("MigrateDown: %w", err)
		}
	}
	return nil
}
