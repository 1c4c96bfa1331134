package repository

import (
	"context"

	"yatube/internal/domain/entity"
)

type UserRepository interface {
	// Get returns (nil, nil) if the user is not found.
	Get(ctx context.Context, id int64) (*entity.User, error)
	// GetByUsername returns (nil, nil) if the user is not found.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	Count(ctx context.Context) (int64, error)
}
