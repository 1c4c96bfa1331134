package post

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"yatube/internal/domain/entity"
	"yatube/internal/domain/event"
	"yatube/internal/observability/metrics"
	"yatube/internal/repository"
)

// Input carries the user-editable fields of a post form.
type Input struct {
	Text    string
	GroupID *int64
	Image   string
}

// Service performs post mutations on behalf of an authenticated user.
type Service struct {
	Posts    repository.PostRepository
	Groups   repository.GroupRepository
	Comments repository.CommentRepository
	Events   event.Publisher
	Logger   *slog.Logger
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// validate checks the form fields and that the chosen group exists.
func (s *Service) validate(ctx context.Context, p *entity.Post) error {
	if err := entity.ValidatePost(p); err != nil {
		return err
	}
	if p.GroupID == nil {
		return nil
	}
	g, err := s.Groups.Get(ctx, *p.GroupID)
	if err != nil {
		return fmt.Errorf("get group: %w", err)
	}
	if g == nil {
		return entity.ValidationErrors{{Field: "group", Message: "select a valid group"}}
	}
	return nil
}

// Create stores a new post written by author.
// The publication date is set by the store and never changes afterwards.
func (s *Service) Create(ctx context.Context, author *entity.User, in Input) (*entity.Post, error) {
	if author.IsAnonymous() {
		return nil, ErrUnauthenticated
	}
	p := &entity.Post{
		Text:     in.Text,
		GroupID:  in.GroupID,
		Image:    in.Image,
		AuthorID: author.ID,
	}
	if err := s.validate(ctx, p); err != nil {
		return nil, err
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	metrics.RecordPostCreated()
	s.logger().InfoContext(ctx, "post created",
		slog.Int64("post_id", p.ID),
		slog.Int64("author_id", p.AuthorID),
		slog.String("post", p.String()))

	if s.Events != nil {
		e := event.PostCreated{PostID: p.ID, AuthorID: p.AuthorID, GroupID: p.GroupID, CreatedAt: p.PubDate}
		if err := s.Events.PublishPostCreated(ctx, e); err != nil {
			s.logger().WarnContext(ctx, "failed to publish post event",
				slog.Int64("post_id", p.ID),
				slog.Any("error", err))
		}
	}
	return p, nil
}

// owned loads the post and checks that caller wrote it.
func (s *Service) owned(ctx context.Context, caller *entity.User, postID int64) (*repository.PostView, error) {
	if caller.IsAnonymous() {
		return nil, ErrUnauthenticated
	}
	view, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if view.Post.AuthorID != caller.ID {
		return nil, ErrNotAuthor
	}
	return view, nil
}

// Get returns the post or ErrPostNotFound.
func (s *Service) Get(ctx context.Context, postID int64) (*repository.PostView, error) {
	if postID <= 0 {
		return nil, ErrPostNotFound
	}
	view, err := s.Posts.Get(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if view == nil {
		return nil, ErrPostNotFound
	}
	return view, nil
}

// Edit replaces text, group and image of a post written by caller.
// Author and publication date are preserved.
func (s *Service) Edit(ctx context.Context, caller *entity.User, postID int64, in Input) (*entity.Post, error) {
	view, err := s.owned(ctx, caller, postID)
	if err != nil {
		return nil, err
	}

	p := *view.Post
	p.Text = in.Text
	p.GroupID = in.GroupID
	p.Image = in.Image
	if err := s.validate(ctx, &p); err != nil {
		return nil, err
	}
	if err := s.Posts.Update(ctx, &p); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return &p, nil
}

// Delete removes a post written by caller together with its comments.
func (s *Service) Delete(ctx context.Context, caller *entity.User, postID int64) error {
	if _, err := s.owned(ctx, caller, postID); err != nil {
		return err
	}
	return s.Remove(ctx, postID)
}

// Remove deletes any post without an authorship check. Moderation only.
func (s *Service) Remove(ctx context.Context, postID int64) error {
	if postID <= 0 {
		return ErrPostNotFound
	}
	if err := s.Posts.Delete(ctx, postID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// AddComment stores a comment by author on the post.
// An invalid comment is reported as a validation error and not stored.
func (s *Service) AddComment(ctx context.Context, author *entity.User, postID int64, text string) (*entity.Comment, error) {
	if author.IsAnonymous() {
		return nil, ErrUnauthenticated
	}
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}
	c := &entity.Comment{PostID: postID, AuthorID: author.ID, Text: text}
	if err := entity.ValidateComment(c); err != nil {
		return nil, err
	}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	metrics.RecordCommentCreated()
	return c, nil
}
