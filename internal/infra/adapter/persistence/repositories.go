// Package persistence selects the SQL repository implementations for a dialect.
package persistence

import (
	"fmt"

	"yatube/internal/infra/adapter/persistence/postgres"
	"yatube/internal/infra/adapter/persistence/sqlite"
	"yatube/internal/infra/db"
	"yatube/internal/repository"
)

// Repositories bundles every repository over one database.
type Repositories struct {
	Users    repository.UserRepository
	Groups   repository.GroupRepository
	Posts    repository.PostRepository
	Comments repository.CommentRepository
	Follows  repository.FollowRepository
}

// New builds the repositories of dialect on q. q is usually a
// circuitbreaker.DB wrapping the pool.
func New(dialect db.Dialect, q db.Querier) (*Repositories, error) {
	switch dialect {
	case db.Postgres:
		return &Repositories{
			Users:    postgres.NewUserRepo(q),
			Groups:   postgres.NewGroupRepo(q),
			Posts:    postgres.NewPostRepo(q),
			Comments: postgres.NewCommentRepo(q),
			Follows:  postgres.NewFollowRepo(q),
		}, nil
	case db.SQLite:
		return &Repositories{
			Users:    sqlite.NewUserRepo(q),
			Groups:   sqlite.NewGroupRepo(q),
			Posts:    sqlite.NewPostRepo(q),
			Comments: sqlite.NewCommentRepo(q),
			Follows:  sqlite.NewFollowRepo(q),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
}
