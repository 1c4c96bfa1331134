package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns lists the dynamic routes, most specific first.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/posts/\d+/$`), Template: "/posts/:id/"},
	{Pattern: regexp.MustCompile(`^/posts/\d+/edit/$`), Template: "/posts/:id/edit/"},
	{Pattern: regexp.MustCompile(`^/posts/\d+/comment/$`), Template: "/posts/:id/comment/"},
	{Pattern: regexp.MustCompile(`^/posts/\d+/delete/$`), Template: "/posts/:id/delete/"},

	{Pattern: regexp.MustCompile(`^/group/[^/]+/$`), Template: "/group/:slug/"},

	{Pattern: regexp.MustCompile(`^/profile/[^/]+/$`), Template: "/profile/:username/"},
	{Pattern: regexp.MustCompile(`^/profile/[^/]+/follow/$`), Template: "/profile/:username/follow/"},
	{Pattern: regexp.MustCompile(`^/profile/[^/]+/unfollow/$`), Template: "/profile/:username/unfollow/"},
}

// NormalizePath converts dynamic paths to their route template so metric
// labels stay bounded. Query strings are dropped and a missing trailing
// slash is tolerated. Static and unknown paths are returned unchanged.
//
// Examples:
//
//	NormalizePath("/posts/123/")            // "/posts/:id/"
//	NormalizePath("/posts/123/edit")        // "/posts/:id/edit/"
//	NormalizePath("/group/cats/?page=2")    // "/group/:slug/"
//	NormalizePath("/profile/leo/follow/")   // "/profile/:username/follow/"
//	NormalizePath("/health")                // "/health"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	candidate := path
	if !strings.HasSuffix(candidate, "/") {
		candidate += "/"
	}
	for _, p := range pathPatterns {
		if p.Pattern.MatchString(candidate) {
			return p.Template
		}
	}
	return path
}

// GetExpectedCardinality returns the expected number of unique path labels
// after normalization: the dynamic templates plus the static endpoints.
func GetExpectedCardinality() int {
	const staticCount = 10 // /, /create/, /follow/, /auth/login/, /health, /metrics ...
	return len(pathPatterns) + staticCount
}
