// Package post implements the write side of posts: creation, author-only
// editing and deletion, and commenting.
package post

import "errors"

// Sentinel errors for post use case operations.
var (
	// ErrPostNotFound indicates that the requested post does not exist.
	ErrPostNotFound = errors.New("post not found")

	// ErrNotAuthor indicates that the caller is not the author of the post.
	ErrNotAuthor = errors.New("only the author may change this post")

	// ErrUnauthenticated indicates that an anonymous caller attempted a write.
	ErrUnauthenticated = errors.New("authentication required")
)
