package repository

import (
	"context"

	"yatube/internal/domain/entity"
)

type GroupRepository interface {
	// GetBySlug returns (nil, nil) if no group has the slug.
	GetBySlug(ctx context.Context, slug string) (*entity.Group, error)
	Get(ctx context.Context, id int64) (*entity.Group, error)
	List(ctx context.Context) ([]*entity.Group, error)
	// Upsert inserts the group or updates title and description of the
	// group that already owns the slug. The stored ID is written back.
	Upsert(ctx context.Context, group *entity.Group) error
	// Delete removes the group. Its posts stay and lose their group.
	Delete(ctx context.Context, slug string) error
	Count(ctx context.Context) (int64, error)
}
