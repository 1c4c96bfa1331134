package db

import (
	"fmt"
	"strings"
)

// Dialect names a supported SQL backend.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ParseDialect validates a DB_DRIVER value.
func ParseDialect(s string) (Dialect, error) {
	switch Dialect(strings.ToLower(strings.TrimSpace(s))) {
	case Postgres, "pgx", "postgresql":
		return Postgres, nil
	case SQLite, "sqlite3":
		return SQLite, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", s)
	}
}

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	if d == SQLite {
		return "sqlite"
	}
	return "pgx"
}

// OnDelete is the referential action taken when a referenced row is deleted.
type OnDelete string

const (
	Cascade OnDelete = "CASCADE"
	SetNull OnDelete = "SET NULL"
)

// ForeignKey describes one reference between tables and its deletion policy.
type ForeignKey struct {
	Table    string
	Column   string
	RefTable string
	OnDelete OnDelete
	Nullable bool
}

// ForeignKeys is the deletion policy of every reference in the schema.
// Both dialects build their DDL from it.
var ForeignKeys = []ForeignKey{
	{Table: "posts", Column: "author_id", RefTable: "users", OnDelete: Cascade},
	{Table: "posts", Column: "group_id", RefTable: "groups", OnDelete: SetNull, Nullable: true},
	{Table: "comments", Column: "post_id", RefTable: "posts", OnDelete: Cascade},
	{Table: "comments", Column: "author_id", RefTable: "users", OnDelete: Cascade},
	{Table: "follows", Column: "user_id", RefTable: "users", OnDelete: Cascade},
	{Table: "follows", Column: "author_id", RefTable: "users", OnDelete: Cascade},
}

// column is a non-key column of a table.
type column struct {
	name string
	pg   string
	lite string
}

type table struct {
	name        string
	columns     []column
	constraints []string
}

// tables lists the schema in creation order. Foreign key columns come from ForeignKeys.
var tables = []table{
	{
		name: "users",
		columns: []column{
			{"username", "VARCHAR(150) NOT NULL UNIQUE", "TEXT NOT NULL UNIQUE"},
			{"password_hash", "TEXT NOT NULL", "TEXT NOT NULL"},
			{"created_at", "TIMESTAMPTZ NOT NULL DEFAULT now()", "DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP"},
		},
	},
	{
		name: "groups",
		columns: []column{
			{"title", "VARCHAR(200) NOT NULL", "TEXT NOT NULL"},
			{"slug", "VARCHAR(50) NOT NULL UNIQUE", "TEXT NOT NULL UNIQUE"},
			{"description", "TEXT NOT NULL DEFAULT ''", "TEXT NOT NULL DEFAULT ''"},
		},
	},
	{
		name: "posts",
		columns: []column{
			{"text", "TEXT NOT NULL", "TEXT NOT NULL"},
			{"pub_date", "TIMESTAMPTZ NOT NULL DEFAULT now()", "DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP"},
			{"image", "VARCHAR(100) NOT NULL DEFAULT ''", "TEXT NOT NULL DEFAULT ''"},
		},
	},
	{
		name: "comments",
		columns: []column{
			{"text", "TEXT NOT NULL", "TEXT NOT NULL"},
			{"pub_date", "TIMESTAMPTZ NOT NULL DEFAULT now()", "DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP"},
		},
	},
	{
		name: "follows",
		constraints: []string{
			"UNIQUE (user_id, author_id)",
			"CHECK (user_id <> author_id)",
		},
	},
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_posts_pub_date ON posts(pub_date DESC, id DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_author_id ON posts(author_id)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_group_id ON posts(group_id)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id)`,
	`CREATE INDEX IF NOT EXISTS idx_follows_author_id ON follows(author_id)`,
}

// CreateStatements returns the DDL that creates the schema for the dialect.
func CreateStatements(d Dialect) []string {
	stmts := make([]string, 0, len(tables)+len(indexes))
	for _, t := range tables {
		stmts = append(stmts, createTable(d, t))
	}
	return append(stmts, indexes...)
}

func createTable(d Dialect, t table) string {
	idType := "BIGSERIAL PRIMARY KEY"
	refType := "BIGINT"
	if d == SQLite {
		idType = "INTEGER PRIMARY KEY AUTOINCREMENT"
		refType = "INTEGER"
	}

	defs := []string{"id " + idType}
	for _, fk := range ForeignKeys {
		if fk.Table != t.name {
			continue
		}
		null := " NOT NULL"
		if fk.Nullable {
			null = ""
		}
		defs = append(defs, fmt.Sprintf("%s %s%s REFERENCES %s(id) ON DELETE %s",
			fk.Column, refType, null, quoteIdent(fk.RefTable), fk.OnDelete))
	}
	for _, c := range t.columns {
		typ := c.pg
		if d == SQLite {
			typ = c.lite
		}
		defs = append(defs, c.name+" "+typ)
	}
	defs = append(defs, t.constraints...)

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n    %s\n)",
		quoteIdent(t.name), strings.Join(defs, ",\n    "))
}

// quoteIdent quotes names that collide with SQL keywords.
func quoteIdent(name string) string {
	if name == "groups" {
		return `"groups"`
	}
	return name
}
