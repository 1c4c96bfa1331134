package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"yatube/internal/domain/entity"
	"yatube/internal/infra/db"
	"yatube/internal/repository"
)

type GroupRepo struct{ db db.Querier }

func NewGroupRepo(q db.Querier) repository.GroupRepository {
	return &GroupRepo{db: q}
}

func (repo *GroupRepo) scanOne(ctx context.Context, query string, arg interface{}) (*entity.Group, error) {
	var g entity.Group
	err := repo.db.QueryRowContext(ctx, query, arg).Scan(&g.ID, &g.Title, &g.Slug, &g.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (repo *GroupRepo) GetBySlug(ctx context.Context, slug string) (*entity.Group, error) {
	const query = `
SELECT id, title, slug, description
FROM "groups"
WHERE slug = $1
LIMIT 1`
	g, err := repo.scanOne(ctx, query, slug)
	if err != nil {
		return nil, fmt.Errorf("GetBySlug: %w", err)
	}
	return g, nil
}

func (repo *GroupRepo) Get(ctx context.Context, id int64) (*entity.Group, error) {
	const query = `
SELECT id, title, slug, description
FROM "groups"
WHERE id = $1
LIMIT 1`
	g, err := repo.scanOne(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return g, nil
}

func (repo *GroupRepo) List(ctx context.Context) ([]*entity.Group, error) {
	const query = `
SELECT id, title, slug, description
FROM "groups"
ORDER BY title ASC, id ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	groups := make([]*entity.Group, 0, 16)
	for rows.Next() {
		var g entity.Group
		if err := rows.Scan(&g.ID, &g.Title, &g.Slug, &g.Description); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		groups = append(groups, &g)
	}
	return groups, rows.Err()
}

func (repo *GroupRepo) Upsert(ctx context.Context, group *entity.Group) error {
	const query = `
INSERT INTO "groups" (title, slug, description)
VALUES ($1, $2, $3)
ON CONFLICT (slug) DO UPDATE SET
       title       = EXCLUDED.title,
       description = EXCLUDED.description
RETURNING id`
	if err := repo.db.QueryRowContext(ctx, query,
		group.Title, group.Slug, group.Description,
	).Scan(&group.ID); err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	return nil
}

// Delete removes the group. Posts keep existing with a NULL group.
func (repo *GroupRepo) Delete(ctx context.Context, slug string) error {
	const query = `DELETE FROM "groups" WHERE slug = $1`
	res, err := repo.db.ExecContext(ctx, query, slug)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *GroupRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "groups"`).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}
