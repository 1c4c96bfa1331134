// Package feed composes the paginated post listings shown to readers:
// the global feed, group feeds, author profiles and the personal follow feed,
// plus the single-post detail view.
package feed

import "errors"

// Sentinel errors for feed use case operations.
var (
	// ErrGroupNotFound indicates that no group has the requested slug.
	ErrGroupNotFound = errors.New("group not found")

	// ErrAuthorNotFound indicates that no user has the requested username.
	ErrAuthorNotFound = errors.New("author not found")

	// ErrPostNotFound indicates that the requested post does not exist.
	ErrPostNotFound = errors.New("post not found")

	// ErrUnauthenticated indicates that the view requires a logged-in viewer.
	ErrUnauthenticated = errors.New("authentication required")
)
