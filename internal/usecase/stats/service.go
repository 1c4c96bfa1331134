// Package stats counts the stored entities for the business gauges.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"yatube/internal/observability/metrics"
	"yatube/internal/repository"
)

// Totals holds the number of rows of each table.
type Totals struct {
	Posts   int64
	Groups  int64
	Users   int64
	Follows int64
}

// Service recounts the tables.
type Service struct {
	Posts   repository.PostRepository
	Groups  repository.GroupRepository
	Users   repository.UserRepository
	Follows repository.FollowRepository
	Logger  *slog.Logger
}

// Collect runs the four counts concurrently and fails if any of them fails.
func (s *Service) Collect(ctx context.Context) (Totals, error) {
	var t Totals
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		t.Posts, err = s.Posts.CountPosts(ctx, repository.AllPosts())
		return wrap("count posts", err)
	})
	eg.Go(func() (err error) {
		t.Groups, err = s.Groups.Count(ctx)
		return wrap("count groups", err)
	})
	eg.Go(func() (err error) {
		t.Users, err = s.Users.Count(ctx)
		return wrap("count users", err)
	})
	eg.Go(func() (err error) {
		t.Follows, err = s.Follows.Count(ctx)
		return wrap("count follows", err)
	})
	if err := eg.Wait(); err != nil {
		return Totals{}, err
	}
	return t, nil
}

// Refresh collects the totals and publishes them to the gauges.
// The gauges keep their previous values when counting fails.
func (s *Service) Refresh(ctx context.Context) (Totals, error) {
	start := time.Now()
	t, err := s.Collect(ctx)
	if err != nil {
		return Totals{}, err
	}
	metrics.UpdateEntityTotals(t.Posts, t.Groups, t.Users, t.Follows)
	metrics.RecordStatsRefresh(time.Since(start))

	if s.Logger != nil {
		s.Logger.InfoContext(ctx, "entity totals refreshed",
			slog.Int64("posts", t.Posts),
			slog.Int64("groups", t.Groups),
			slog.Int64("users", t.Users),
			slog.Int64("follows", t.Follows),
			slog.Duration("duration", time.Since(start)))
	}
	return t, nil
}

func wrap(op string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
