// Package follow maintains the directed follow relation between users.
package follow

import "errors"

var (
	// ErrAuthorNotFound indicates that no user has the requested username.
	ErrAuthorNotFound = errors.New("author not found")

	// ErrUnauthenticated indicates that an anonymous caller tried to change the graph.
	ErrUnauthenticated = errors.New("authentication required")
)
