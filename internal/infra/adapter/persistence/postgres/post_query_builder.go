// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

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
// This builder is shared between COUNT and SELECT queries so both always see
// the same sequence.
type PostQueryBuilder struct{}

// NewPostQueryBuilder creates a new query builder instance.
func NewPostQueryBuilder() *PostQueryBuilder {
	return &PostQueryBuilder{}
}

// BuildWhereClause returns the condition for the filter and its arguments.
// Placeholders start at $1. Returns an empty clause for FilterAll.
func (qb *PostQueryBuilder) BuildWhereClause(filter repository.PostFilter) (clause string, args []interface{}) {
	switch filter.Kind {
	case repository.FilterByGroup:
		return "WHERE g.slug = $1", []interface{}{filter.GroupSlug}
	case repository.FilterByAuthor:
		return "WHERE u.username = $1", []interface{}{filter.Username}
	case repository.FilterByFollowed:
		return "WHERE p.author_id IN (SELECT f.author_id FROM follows f WHERE f.user_id = $1)",
			[]interface{}{filter.FollowerID}
	default:
		return "", nil
	}
}

// BuildOrderClause returns the ORDER BY clause. Ties on pub_date are broken
// by id so pages never overlap.
func (qb *PostQueryBuilder) BuildOrderClause(order repository.PostOrder) string {
	if order == repository.OldestFirst {
		return "ORDER BY p.pub_date ASC, p.id ASC"
	}
	return "ORDER BY p.pub_date DESC, p.id DESC"
}

// BuildListQuery assembles the windowed SELECT with LIMIT and OFFSET appended
// after the filter arguments.
func (qb *PostQueryBuilder) BuildListQuery(filter repository.PostFilter, order repository.PostOrder, offset, limit int) (string, []interface{}) {
	where, args := qb.BuildWhereClause(filter)
	n := len(args)
	query := fmt.Sprintf("SELECT %s%s\n%s\n%s\nLIMIT $%d OFFSET $%d",
		postViewColumns, postViewFrom, where, qb.BuildOrderClause(order), n+1, n+2)
	return query, append(args, limit, offset)
}

// BuildCountQuery assembles the COUNT query for the filter.
func (qb *PostQueryBuilder) BuildCountQuery(filter repository.PostFilter) (string, []interface{}) {
	where, args := qb.BuildWhereClause(filter)
	return fmt.Sprintf("SELECT COUNT(*)%s\n%s", postViewFrom, where), args
}
