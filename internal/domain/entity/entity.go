// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Post, Group, Comment and Follow,
// along with their validation rules and domain-specific errors.
package entity

import (
	"time"

	"yatube/internal/utils/text"
)

// postLabelLength is how many characters of the text identify a post.
const postLabelLength = 15

// User is the identity that authors posts and comments and follows other users.
// Authentication data never leaves the persistence and auth layers.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// IsAnonymous reports whether u does not identify a stored user.
func (u *User) IsAnonymous() bool {
	return u == nil || u.ID <= 0
}

// Group is a named community posts may optionally belong to.
type Group struct {
	ID          int64
	Title       string
	Slug        string
	Description string
}

func (g *Group) String() string { return g.Title }

// Post is a single entry written by an author.
// PubDate is assigned once at creation and never changes afterwards.
type Post struct {
	ID       int64
	Text     string
	PubDate  time.Time
	AuthorID int64
	GroupID  *int64
	Image    string
}

// String returns the first characters of the text, enough to recognize the
// post in logs and the admin CLI.
func (p *Post) String() string { return text.Truncate(p.Text, postLabelLength) }

// Comment is a reply to a post.
type Comment struct {
	ID       int64
	PostID   int64
	AuthorID int64
	Text     string
	PubDate  time.Time
}

// Follow is a directed edge from a follower (UserID) to a followed author (AuthorID).
type Follow struct {
	ID       int64
	UserID   int64
	AuthorID int64
}
