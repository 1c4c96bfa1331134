package entity

import (
	"fmt"
	"regexp"
	"strings"

	"yatube/internal/utils/text"
)

const (
	maxGroupTitleLength = 200
	maxSlugLength       = 50
	maxUsernameLength   = 150
	maxImageRefLength   = 100
)

var (
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
)

// ValidatePost checks the user-editable fields of a post.
// All failing fields are reported at once so a form can show them together.
func ValidatePost(p *Post) error {
	var errs ValidationErrors
	if strings.TrimSpace(p.Text) == "" {
		errs = append(errs, &ValidationError{Field: "text", Message: "text is required"})
	}
	if p.GroupID != nil && *p.GroupID <= 0 {
		errs = append(errs, &ValidationError{Field: "group", Message: "group must be a positive id"})
	}
	if text.CountRunes(p.Image) > maxImageRefLength {
		errs = append(errs, &ValidationError{
			Field:   "image",
			Message: fmt.Sprintf("image must not exceed %d characters", maxImageRefLength),
		})
	}
	return errs.OrNil()
}

// ValidateComment checks a comment body.
func ValidateComment(c *Comment) error {
	if strings.TrimSpace(c.Text) == "" {
		return ValidationErrors{{Field: "text", Message: "text is required"}}
	}
	return nil
}

// ValidateGroup checks title and slug of a group.
func ValidateGroup(g *Group) error {
	var errs ValidationErrors
	switch n := text.CountRunes(g.Title); {
	case strings.TrimSpace(g.Title) == "":
		errs = append(errs, &ValidationError{Field: "title", Message: "title is required"})
	case n > maxGroupTitleLength:
		errs = append(errs, &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title must not exceed %d characters", maxGroupTitleLength),
		})
	}
	if err := ValidateSlug(g.Slug); err != nil {
		errs = append(errs, err.(*ValidationError))
	}
	return errs.OrNil()
}

// ValidateSlug accepts latin letters, digits, hyphens and underscores only.
func ValidateSlug(slug string) error {
	if slug == "" {
		return &ValidationError{Field: "slug", Message: "slug is required"}
	}
	if len(slug) > maxSlugLength {
		return &ValidationError{Field: "slug", Message: fmt.Sprintf("slug must not exceed %d characters", maxSlugLength)}
	}
	if !slugPattern.MatchString(slug) {
		return &ValidationError{Field: "slug", Message: "slug must contain only letters, digits, hyphens and underscores"}
	}
	return nil
}

// ValidateUsername accepts letters, digits and @/./+/-/_ up to 150 characters.
func ValidateUsername(username string) error {
	if username == "" {
		return &ValidationError{Field: "username", Message: "username is required"}
	}
	if text.CountRunes(username) > maxUsernameLength {
		return &ValidationError{Field: "username", Message: fmt.Sprintf("username must not exceed %d characters", maxUsernameLength)}
	}
	if !usernamePattern.MatchString(username) {
		return &ValidationError{Field: "username", Message: "username contains invalid characters"}
	}
	return nil
}
