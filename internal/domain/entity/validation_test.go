package entity

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestValidatePost(t *testing.T) {
	tests := []struct {
		name       string
		post       Post
		wantFields []string
	}{
		{
			name: "valid post without group",
			post: Post{Text: "hello"},
		},
		{
			name: "valid post with group and image",
			post: Post{Text: "hello", GroupID: int64Ptr(3), Image: "posts/cat.gif"},
		},
		{
			name:       "blank text",
			post:       Post{Text: "   \n"},
			wantFields: []string{"text"},
		},
		{
			name:       "non-positive group id",
			post:       Post{Text: "x", GroupID: int64Ptr(0)},
			wantFields: []string{"group"},
		},
		{
			name:       "every field invalid",
			post:       Post{Text: "", GroupID: int64Ptr(-1), Image: strings.Repeat("a", 101)},
			wantFields: []string{"text", "group", "image"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePost(&tt.post)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}
			var errs ValidationErrors
			require.True(t, errors.As(err, &errs))
			fields := errs.Fields()
			assert.Len(t, fields, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, fields, f)
			}
		})
	}
}

func TestValidateComment(t *testing.T) {
	assert.NoError(t, ValidateComment(&Comment{Text: "nice"}))
	assert.ErrorIs(t, ValidateComment(&Comment{Text: " "}), ErrValidationFailed)
}

func TestValidateGroup(t *testing.T) {
	tests := []struct {
		name    string
		group   Group
		wantErr bool
	}{
		{name: "valid", group: Group{Title: "Cats", Slug: "cats_and-dogs1"}},
		{name: "missing title", group: Group{Slug: "cats"}, wantErr: true},
		{name: "title too long", group: Group{Title: strings.Repeat("t", 201), Slug: "cats"}, wantErr: true},
		{name: "missing slug", group: Group{Title: "Cats"}, wantErr: true},
		{name: "slug with space", group: Group{Title: "Cats", Slug: "cats dogs"}, wantErr: true},
		{name: "slug with cyrillic", group: Group{Title: "Cats", Slug: "кошки"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGroup(&tt.group)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidationFailed)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("leo.tolstoy+blog@example"))
	assert.Error(t, ValidateUsername(""))
	assert.Error(t, ValidateUsername("has space"))
	assert.Error(t, ValidateUsername(strings.Repeat("u", 151)))
}
