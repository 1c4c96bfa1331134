package repository

import (
	"context"

	"yatube/internal/domain/entity"
)

type FollowRepository interface {
	// Create stores the edge unless it already exists.
	// created reports whether a new row was written.
	Create(ctx context.Context, follow *entity.Follow) (created bool, err error)
	// Delete removes the edge. Removing a missing edge is not an error.
	Delete(ctx context.Context, userID, authorID int64) error
	Exists(ctx context.Context, userID, authorID int64) (bool, error)
	// ListFollowedAuthors returns the ids of the authors userID follows.
	ListFollowedAuthors(ctx context.Context, userID int64) ([]int64, error)
	Count(ctx context.Context) (int64, error)
}
