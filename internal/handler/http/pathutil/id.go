// Package pathutil parses path parameters and normalizes request paths for metric labels.
package pathutil

import (
	"errors"
	"strconv"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses a positive integer path parameter such as r.PathValue("id").
//
// Example:
//
//	id, err := ParseID(r.PathValue("id"))
//	// "/posts/123/" → 123, nil
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
