package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStatements_ReferentialActions(t *testing.T) {
	for _, d := range []Dialect{Postgres, SQLite} {
		t.Run(string(d), func(t *testing.T) {
			ddl := strings.Join(CreateStatements(d), "\n")
			for _, fk := range ForeignKeys {
				assert.Contains(t, ddl, fk.Column+" ")
				assert.Contains(t, ddl, "REFERENCES "+quoteIdent(fk.RefTable)+"(id) ON DELETE "+string(fk.OnDelete))
			}
			assert.Contains(t, ddl, "CHECK (user_id <> author_id)")
			assert.Contains(t, ddl, "UNIQUE (user_id, author_id)")
		})
	}
}

func TestCreateStatements_GroupColumnNullable(t *testing.T) {
	stmts := CreateStatements(Postgres)
	var posts string
	for _, s := range stmts {
		if strings.Contains(s, "TABLE IF NOT EXISTS posts") {
			posts = s
		}
	}
	require.NotEmpty(t, posts)
	assert.Contains(t, posts, `group_id BIGINT REFERENCES "groups"(id) ON DELETE SET NULL`)
	assert.Contains(t, posts, "author_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE")
}

func TestMigrateUp_Postgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	for _, name := range []string{"users", `"groups"`, "posts", "comments", "follows"} {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + regexp.QuoteMeta(name)).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
	for range indexes {
		mock.ExpectExec("CREATE INDEX IF NOT EXISTS").
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	err = MigrateUp(context.Background(), db, Postgres)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_StopsOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").
		WillReturnError(sql.ErrConnDone)

	err = MigrateUp(context.Background(), db, Postgres)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateDown(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	for _, name := range []string{"follows", "comments", "posts", `"groups"`, "users"} {
		mock.ExpectExec("DROP TABLE IF EXISTS " + regexp.QuoteMeta(name)).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	assert.NoError(t, MigrateDown(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestMigrateUp_SQLiteDeletionPolicy runs the generated schema on a real
// SQLite file and checks every referential action.
func TestMigrateUp_SQLiteDeletionPolicy(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, SQLite, filepath.Join(t.TempDir(), "schema.db"))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, MigrateUp(ctx, db, SQLite))
	// Running twice is harmless.
	require.NoError(t, MigrateUp(ctx, db, SQLite))

	mustExec := func(query string, args ...any) {
		t.Helper()
		_, err := db.ExecContext(ctx, query, args...)
		require.NoError(t, err)
	}
	count := func(query string, args ...any) int {
		t.Helper()
		var n int
		require.NoError(t, db.QueryRowContext(ctx, query, args...).Scan(&n))
		return n
	}

	mustExec(`INSERT INTO users (id, username, password_hash) VALUES (1, 'leo', 'x'), (2, 'ann', 'x')`)
	mustExec(`INSERT INTO "groups" (id, title, slug) VALUES (1, 'Cats', 'cats')`)
	mustExec(`INSERT INTO posts (id, text, author_id, group_id) VALUES (1, 'hello', 1, 1), (2, 'world', 2, 1)`)
	mustExec(`INSERT INTO comments (post_id, author_id, text) VALUES (1, 2, 'nice'), (2, 1, 'ok')`)
	mustExec(`INSERT INTO follows (user_id, author_id) VALUES (2, 1)`)

	_, err = db.ExecContext(ctx, `INSERT INTO follows (user_id, author_id) VALUES (1, 1)`)
	assert.Error(t, err, "self follow must be rejected")
	_, err = db.ExecContext(ctx, `INSERT INTO follows (user_id, author_id) VALUES (2, 1)`)
	assert.Error(t, err, "duplicate follow must be rejected")

	// Deleting a group keeps its posts.
	mustExec(`DELETE FROM "groups" WHERE id = 1`)
	assert.Equal(t, 2, count(`SELECT COUNT(*) FROM posts WHERE group_id IS NULL`))

	// Deleting a post removes its comments.
	mustExec(`DELETE FROM posts WHERE id = 2`)
	assert.Equal(t, 1, count(`SELECT COUNT(*) FROM comments`))

	// Deleting a user removes their posts, comments and follow edges.
	mustExec(`DELETE FROM users WHERE id = 1`)
	assert.Equal(t, 0, count(`SELECT COUNT(*) FROM posts`))
	assert.Equal(t, 0, count(`SELECT COUNT(*) FROM comments`))
	assert.Equal(t, 0, count(`SELECT COUNT(*) FROM follows`))
}
