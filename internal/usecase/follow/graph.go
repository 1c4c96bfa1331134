package follow

import (
	"context"
	"fmt"
	"log/slog"

	"yatube/internal/domain/entity"
	"yatube/internal/domain/event"
	"yatube/internal/observability/metrics"
	"yatube/internal/repository"
)

// Graph is the follow relation. Following is idempotent and a user
// following themselves is ignored.
type Graph struct {
	Users   repository.UserRepository
	Follows repository.FollowRepository
	Events  event.Publisher
	Logger  *slog.Logger
}

func (g *Graph) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

func (g *Graph) author(ctx context.Context, username string) (*entity.User, error) {
	author, err := g.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get author: %w", err)
	}
	if author == nil {
		return nil, ErrAuthorNotFound
	}
	return author, nil
}

// Follow makes follower follow the user named username.
// Following oneself or an already followed author changes nothing.
func (g *Graph) Follow(ctx context.Context, follower *entity.User, username string) error {
	if follower.IsAnonymous() {
		return ErrUnauthenticated
	}
	author, err := g.author(ctx, username)
	if err != nil {
		return err
	}
	if author.ID == follower.ID {
		return nil
	}

	created, err := g.Follows.Create(ctx, &entity.Follow{UserID: follower.ID, AuthorID: author.ID})
	if err != nil {
		return fmt.Errorf("create follow: %w", err)
	}
	if created {
		metrics.RecordFollowChange("follow")
	}
	if created && g.Events != nil {
		e := event.FollowCreated{UserID: follower.ID, AuthorID: author.ID}
		if err := g.Events.PublishFollowCreated(ctx, e); err != nil {
			g.logger().WarnContext(ctx, "failed to publish follow event",
				slog.Int64("user_id", e.UserID),
				slog.Int64("author_id", e.AuthorID),
				slog.Any("error", err))
		}
	}
	return nil
}

// Unfollow removes the edge from follower to the user named username if present.
func (g *Graph) Unfollow(ctx context.Context, follower *entity.User, username string) error {
	if follower.IsAnonymous() {
		return ErrUnauthenticated
	}
	author, err := g.author(ctx, username)
	if err != nil {
		return err
	}
	if err := g.Follows.Delete(ctx, follower.ID, author.ID); err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	metrics.RecordFollowChange("unfollow")
	return nil
}

// IsFollowing reports whether followerID follows authorID.
func (g *Graph) IsFollowing(ctx context.Context, followerID, authorID int64) (bool, error) {
	ok, err := g.Follows.Exists(ctx, followerID, authorID)
	if err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}
	return ok, nil
}

// FollowedAuthors returns the ids of the authors followerID follows.
func (g *Graph) FollowedAuthors(ctx context.Context, followerID int64) ([]int64, error) {
	ids, err := g.Follows.ListFollowedAuthors(ctx, followerID)
	if err != nil {
		return nil, fmt.Errorf("list followed authors: %w", err)
	}
	return ids, nil
}
