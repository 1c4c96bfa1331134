// Package event defines the domain events emitted after successful writes
// and the publisher port the use cases depend on.
package event

import (
	"context"
	"time"
)

const (
	SubjectPostCreated   = "post.created"
	SubjectFollowCreated = "follow.created"
)

// PostCreated is emitted once a new post is stored.
type PostCreated struct {
	PostID    int64     `json:"post_id"`
	AuthorID  int64     `json:"author_id"`
	GroupID   *int64    `json:"group_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FollowCreated is emitted when a follow edge is stored for the first time.
type FollowCreated struct {
	UserID   int64 `json:"user_id"`
	AuthorID int64 `json:"author_id"`
}

// Publisher delivers domain events. Delivery is best effort: callers log
// failures and never roll back the write that produced the event.
type Publisher interface {
	PublishPostCreated(ctx context.Context, e PostCreated) error
	PublishFollowCreated(ctx context.Context, e FollowCreated) error
}

// Discard is a Publisher that drops every event.
type Discard struct{}

func (Discard) PublishPostCreated(context.Context, PostCreated) error     { return nil }
func (Discard) PublishFollowCreated(context.Context, FollowCreated) error { return nil }
