package repository

import (
	"context"

	"yatube/internal/domain/entity"
)

// CommentView is a comment joined with its author's username.
type CommentView struct {
	Comment        *entity.Comment
	AuthorUsername string
}

type CommentRepository interface {
	// ListByPost returns the comments of a post, newest first.
	ListByPost(ctx context.Context, postID int64) ([]CommentView, error)
	Create(ctx context.Context, comment *entity.Comment) error
}
