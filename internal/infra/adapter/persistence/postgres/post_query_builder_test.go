package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"yatube/internal/repository"
)

func TestPostQueryBuilder_BuildWhereClause(t *testing.T) {
	qb := NewPostQueryBuilder()

	tests := []struct {
		name       string
		filter     repository.PostFilter
		wantClause string
		wantArgs   []interface{}
	}{
		{name: "all", filter: repository.AllPosts(), wantClause: "", wantArgs: nil},
		{name: "group", filter: repository.ByGroup("cats"), wantClause: "WHERE g.slug = $1", wantArgs: []interface{}{"cats"}},
		{name: "author", filter: repository.ByAuthor("leo"), wantClause: "WHERE u.username = $1", wantArgs: []interface{}{"leo"}},
		{
			name:       "followed",
			filter:     repository.ByFollowed(7),
			wantClause: "WHERE p.author_id IN (SELECT f.author_id FROM follows f WHERE f.user_id = $1)",
			wantArgs:   []interface{}{int64(7)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := qb.BuildWhereClause(tt.filter)
			assert.Equal(t, tt.wantClause, clause)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestPostQueryBuilder_BuildListQuery(t *testing.T) {
	qb := NewPostQueryBuilder()

	query, args := qb.BuildListQuery(repository.ByGroup("cats"), repository.NewestFirst, 10, 10)
	assert.True(t, strings.HasSuffix(query, "LIMIT $2 OFFSET $3"), query)
	assert.Contains(t, query, "ORDER BY p.pub_date DESC, p.id DESC")
	assert.Equal(t, []interface{}{"cats", 10, 10}, args)

	query, args = qb.BuildListQuery(repository.AllPosts(), repository.OldestFirst, 0, 5)
	assert.True(t, strings.HasSuffix(query, "LIMIT $1 OFFSET $2"), query)
	assert.Contains(t, query, "ORDER BY p.pub_date ASC, p.id ASC")
	assert.Equal(t, []interface{}{5, 0}, args)
}

func TestPostQueryBuilder_BuildCountQuery(t *testing.T) {
	qb := NewPostQueryBuilder()

	query, args := qb.BuildCountQuery(repository.ByAuthor("leo"))
	assert.True(t, strings.HasPrefix(query, "SELECT COUNT(*)"))
	assert.Contains(t, query, "WHERE u.username = $1")
	assert.Equal(t, []interface{}{"leo"}, args)
}
