package repository

import (
	"context"

	"yatube/internal/domain/entity"
)

// FilterKind selects which posts a PostFilter matches.
type FilterKind int

const (
	FilterAll FilterKind = iota
	FilterByGroup
	FilterByAuthor
	FilterByFollowed
)

// PostFilter narrows a post listing to one feed view.
// Exactly one of the payload fields is meaningful, selected by Kind.
type PostFilter struct {
	Kind       FilterKind
	GroupSlug  string // FilterByGroup
	Username   string // FilterByAuthor
	FollowerID int64  // FilterByFollowed
}

// AllPosts matches every post.
func AllPosts() PostFilter { return PostFilter{Kind: FilterAll} }

// ByGroup matches posts whose group has the given slug.
func ByGroup(slug string) PostFilter { return PostFilter{Kind: FilterByGroup, GroupSlug: slug} }

// ByAuthor matches posts written by the user with the given username.
func ByAuthor(username string) PostFilter { return PostFilter{Kind: FilterByAuthor, Username: username} }

// ByFollowed matches posts written by any author the follower follows.
func ByFollowed(followerID int64) PostFilter {
	return PostFilter{Kind: FilterByFollowed, FollowerID: followerID}
}

// PostOrder is the ordering applied to a post listing.
type PostOrder int

const (
	// NewestFirst orders by publication date descending, ties broken by id descending.
	NewestFirst PostOrder = iota
	OldestFirst
)

// PostView is a post joined with the display data of its author and group.
type PostView struct {
	Post           *entity.Post
	AuthorUsername string
	GroupSlug      string // empty when the post has no group
	GroupTitle     string
}

type PostRepository interface {
	// ListPosts returns one window of the filtered, ordered post sequence.
	// Parameters:
	//   - offset: Number of rows to skip (calculated from page number)
	//   - limit: Maximum number of rows to return
	ListPosts(ctx context.Context, filter PostFilter, order PostOrder, offset, limit int) ([]PostView, error)
	// CountPosts returns the size of the filtered sequence.
	CountPosts(ctx context.Context, filter PostFilter) (int64, error)
	// Get returns (nil, nil) if the post is not found.
	Get(ctx context.Context, id int64) (*PostView, error)
	// Create stores the post and fills in its ID and PubDate.
	Create(ctx context.Context, post *entity.Post) error
	// Update rewrites text, group and image. PubDate and author never change.
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id int64) error
}
