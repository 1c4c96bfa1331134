package sqlite

import (
	"context"
	"fmt"

	"yatube/internal/domain/entity"
	"yatube/internal/infra/db"
	"yatube/internal/repository"
)

type FollowRepo struct{ db db.Querier }

func NewFollowRepo(q db.Querier) repository.FollowRepository {
	return &FollowRepo{db: q}
}

// Create inserts the edge. An existing edge is left untouched and reported
// as created=false.
func (repo *FollowRepo) Create(ctx context.Context, follow *entity.Follow) (bool, error) {
	const query = `
INSERT INTO follows (user_id, author_id)
VALUES (?, ?)
ON CONFLICT (user_id, author_id) DO NOTHING`
	res, err := repo.db.ExecContext(ctx, query, follow.UserID, follow.AuthorID)
	if err != nil {
		return false, fmt.Errorf("Create: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Create: RowsAffected: %w", err)
	}
	return n > 0, nil
}

func (repo *FollowRepo) Delete(ctx context.Context, userID, authorID int64) error {
	const query = `DELETE FROM follows WHERE user_id = ? AND author_id = ?`
	if _, err := repo.db.ExecContext(ctx, query, userID, authorID); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

func (repo *FollowRepo) Exists(ctx context.Context, userID, authorID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM follows WHERE user_id = ? AND author_id = ?)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, userID, authorID).Scan(&exists); err != nil {
		return false, fmt.Errorf("Exists: %w", err)
	}
	return exists, nil
}

func (repo *FollowRepo) ListFollowedAuthors(ctx context.Context, userID int64) ([]int64, error) {
	const query = `
SELECT author_id
FROM follows
WHERE user_id = ?
ORDER BY author_id ASC`
	rows, err := repo.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ListFollowedAuthors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ids := make([]int64, 0, 16)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ListFollowedAuthors: Scan: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (repo *FollowRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM follows`).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}
