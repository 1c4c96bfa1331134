package feed

import (
	"context"
	"fmt"

	"yatube/internal/common/pagination"
	"yatube/internal/domain/entity"
	"yatube/internal/repository"
)

// View names used for metrics labels.
const (
	ViewGlobal  = "global"
	ViewGroup   = "group"
	ViewProfile = "profile"
	ViewFollow  = "follow"
)

// Page is one page of a post listing.
type Page struct {
	Posts      []repository.PostView
	Pagination pagination.Metadata
}

// GroupPage is a page of a group feed together with the group.
type GroupPage struct {
	Group *entity.Group
	Page
}

// ProfilePage is a page of an author's posts.
type ProfilePage struct {
	Author    *entity.User
	PostCount int64
	// Following reports whether the viewer follows the author.
	// Always false for anonymous viewers and for the author's own profile.
	Following bool
	Page
}

// Detail is a single post with its comments, newest first.
type Detail struct {
	Post repository.PostView
	// AuthorPostCount is the number of posts written by the post's author.
	AuthorPostCount int64
	Comments        []repository.CommentView
}

// Service builds feed views on top of the repositories.
type Service struct {
	Posts    repository.PostRepository
	Groups   repository.GroupRepository
	Users    repository.UserRepository
	Follows  repository.FollowRepository
	Comments repository.CommentRepository
	PageSize int
}

func (s *Service) pageSize() int {
	if s.PageSize > 0 {
		return s.PageSize
	}
	return pagination.DefaultConfig().PageSize
}

// page counts the filtered sequence, clamps the requested page into range
// and loads that window.
func (s *Service) page(ctx context.Context, view string, filter repository.PostFilter, requested int) (Page, error) {
	total, err := s.Posts.CountPosts(ctx, filter)
	if err != nil {
		return Page{}, fmt.Errorf("count posts: %w", err)
	}

	meta := pagination.Resolve(requested, total, s.pageSize())
	pagination.RecordRequest(view, requested, meta.Page)

	posts, err := s.Posts.ListPosts(ctx, filter, repository.NewestFirst, meta.Offset(), meta.Limit)
	if err != nil {
		return Page{}, fmt.Errorf("list posts: %w", err)
	}
	return Page{Posts: posts, Pagination: meta}, nil
}

// Global returns a page of all posts, newest first.
func (s *Service) Global(ctx context.Context, page int) (Page, error) {
	return s.page(ctx, ViewGlobal, repository.AllPosts(), page)
}

// Group returns a page of the posts in the group with the given slug.
// Returns ErrGroupNotFound for an unknown slug.
func (s *Service) Group(ctx context.Context, slug string, page int) (*GroupPage, error) {
	group, err := s.Groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	p, err := s.page(ctx, ViewGroup, repository.ByGroup(slug), page)
	if err != nil {
		return nil, err
	}
	return &GroupPage{Group: group, Page: p}, nil
}

// Profile returns a page of an author's posts and whether viewer follows them.
// viewer may be nil. Returns ErrAuthorNotFound for an unknown username.
func (s *Service) Profile(ctx context.Context, username string, viewer *entity.User, page int) (*ProfilePage, error) {
	author, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get author: %w", err)
	}
	if author == nil {
		return nil, ErrAuthorNotFound
	}

	p, err := s.page(ctx, ViewProfile, repository.ByAuthor(username), page)
	if err != nil {
		return nil, err
	}

	following := false
	if !viewer.IsAnonymous() && viewer.ID != author.ID {
		following, err = s.Follows.Exists(ctx, viewer.ID, author.ID)
		if err != nil {
			return nil, fmt.Errorf("check follow: %w", err)
		}
	}

	return &ProfilePage{
		Author:    author,
		PostCount: p.Pagination.Total,
		Following: following,
		Page:      p,
	}, nil
}

// Follow returns a page of posts by the authors viewer follows.
// Returns ErrUnauthenticated for an anonymous viewer.
func (s *Service) Follow(ctx context.Context, viewer *entity.User, page int) (Page, error) {
	if viewer.IsAnonymous() {
		return Page{}, ErrUnauthenticated
	}
	return s.page(ctx, ViewFollow, repository.ByFollowed(viewer.ID), page)
}

// Detail returns a post, its author's post count and its comments.
// Returns ErrPostNotFound for an unknown id.
func (s *Service) Detail(ctx context.Context, postID int64) (*Detail, error) {
	if postID <= 0 {
		return nil, ErrPostNotFound
	}
	post, err := s.Posts.Get(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	count, err := s.Posts.CountPosts(ctx, repository.ByAuthor(post.AuthorUsername))
	if err != nil {
		return nil, fmt.Errorf("count author posts: %w", err)
	}

	comments, err := s.Comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return &Detail{Post: *post, AuthorPostCount: count, Comments: comments}, nil
}
