// Package sqlite provides SQLite implementations of repository interfaces.
package sqlite

import (
	"fmt"

	"yatube/internal/repository"
)

const postViewColumns = `p.id, p.text, p.pub_date, p.author_id, p.group_id, p.image, u.username, g.slug, g.title`

const postViewFrom = `
FROM posts p
INNER JOIN users u ON u.id = p.author_id
LEFT JOIN "groups" g ON g.id = p.group_id`

// PostQueryBuilder builds WHERE and ORDER BY clauses for post listings.
// This builder is shared between COUNT and SELECT queries.
type PostQueryBuilder struct{}

// NewPostQueryBuilder creates a new query builder instance.
func NewPostQueryBuilder() *PostQueryBuilder {
	return &PostQueryBuilder{}
}

// BuildWhereClause returns the condition for the filter and its arguments.
func (qb *PostQueryBuilder) BuildWhereClause(filter repository.PostFilter) (clause string, args []interface{}) {
	switch filter.Kind {
	case repository.FilterByGroup:
		return "WHERE g.slug = ?", []interface{}{filter.GroupSlug}
	case repository.FilterByAuthor:
		return "WHERE u.username = ?", []interface{}{filter.Username}
	case repository.FilterByFollowed:
		return "WHERE p.author_id IN (SELECT f.author_id FROM follows f WHERE f.user_id = ?)",
			[]interface{}{filter.FollowerID}
	default:
		return "", nil
	}
}

// BuildOrderClause returns the ORDER BY clause with id as tie breaker.
func (qb *PostQueryBuilder) BuildOrderClause(order repository.PostOrder) string {
	if order == repository.OldestFirst {
		return "ORDER BY p.pub_date ASC, p.id ASC"
	}
	return "ORDER BY p.pub_date DESC, p.id DESC"
}

// BuildListQuery assembles the windowed SELECT.
func (qb *PostQueryBuilder) BuildListQuery(filter repository.PostFilter, order repository.PostOrder, offset, limit int) (string, []interface{}) {
	where, args := qb.BuildWhereClause(filter)
	query := fmt.Sprintf("SELECT %s%s\n%s\n%s\nLIMIT ? OFFSET ?",
		postViewColumns, postViewFrom, where, qb.BuildOrderClause(order))
	return query, append(args, limit, offset)
}

// BuildCountQuery assembles the COUNT query for the filter.
func (qb *PostQueryBuilder) BuildCountQuery(filter repository.PostFilter) (string, []interface{}) {
	where, args := qb.BuildWhereClause(filter)
	return fmt.Sprintf("SELECT COUNT(*)%s\n%s", postViewFrom, where), args
}
