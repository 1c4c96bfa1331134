package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"yatube/internal/domain/entity"
	"yatube/internal/infra/db"
	"yatube/internal/repository"
)

type UserRepo struct{ db db.Querier }

func NewUserRepo(q db.Querier) repository.UserRepository {
	return &UserRepo{db: q}
}

func (repo *UserRepo) scanOne(ctx context.Context, query string, arg interface{}) (*entity.User, error) {
	var u entity.User
	err := repo.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (repo *UserRepo) Get(ctx context.Context, id int64) (*entity.User, error) {
	const query = `
SELECT id, username, password_hash, created_at
FROM users
WHERE id = ?
LIMIT 1`
	u, err := repo.scanOne(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return u, nil
}

func (repo *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	const query = `
SELECT id, username, password_hash, created_at
FROM users
WHERE username = ?
LIMIT 1`
	u, err := repo.scanOne(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("GetByUsername: %w", err)
	}
	return u, nil
}

func (repo *UserRepo) Create(ctx context.Context, user *entity.User) error {
	const query = `
INSERT INTO users (username, password_hash, created_at)
VALUES (?, ?, ?)`
	createdAt := time.Now().UTC()
	res, err := repo.db.ExecContext(ctx, query, user.Username, user.PasswordHash, createdAt)
	if err != nil {
		return fmt.Errorf("Create: ExecContext: %w", err)
	}
	if user.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("Create: LastInsertId: %w", err)
	}
	user.CreatedAt = createdAt
	return nil
}

func (repo *UserRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}
