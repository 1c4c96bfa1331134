package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"yatube/internal/domain/entity"
	"yatube/internal/infra/db"
	"yatube/internal/repository"
)

type PostRepo struct {
	db           db.Querier
	queryBuilder *PostQueryBuilder
}

func NewPostRepo(q db.Querier) repository.PostRepository {
	return &PostRepo{
		db:           q,
		queryBuilder: NewPostQueryBuilder(),
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPostView(row rowScanner) (repository.PostView, error) {
	var (
		post       entity.Post
		groupID    sql.NullInt64
		groupSlug  sql.NullString
		groupTitle sql.NullString
		view       repository.PostView
	)
	if err := row.Scan(&post.ID, &post.Text, &post.PubDate, &post.AuthorID,
		&groupID, &post.Image, &view.AuthorUsername, &groupSlug, &groupTitle); err != nil {
		return view, err
	}
	if groupID.Valid {
		id := groupID.Int64
		post.GroupID = &id
	}
	view.Post = &post
	view.GroupSlug = groupSlug.String
	view.GroupTitle = groupTitle.String
	return view, nil
}

// ListPosts retrieves one window of the filtered post sequence.
func (repo *PostRepo) ListPosts(ctx context.Context, filter repository.PostFilter, order repository.PostOrder, offset, limit int) ([]repository.PostView, error) {
	query, args := repo.queryBuilder.BuildListQuery(filter, order, offset, limit)
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListPosts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.PostView, 0, limit)
	for rows.Next() {
		view, err := scanPostView(rows)
		if err != nil {
			return nil, fmt.Errorf("ListPosts: Scan: %w", err)
		}
		result = append(result, view)
	}
	return result, rows.Err()
}

// CountPosts returns the number of posts matching the filter.
func (repo *PostRepo) CountPosts(ctx context.Context, filter repository.PostFilter) (int64, error) {
	query, args := repo.queryBuilder.BuildCountQuery(filter)
	var count int64
	if err := repo.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountPosts: %w", err)
	}
	return count, nil
}

func (repo *PostRepo) Get(ctx context.Context, id int64) (*repository.PostView, error) {
	query := "SELECT " + postViewColumns + postViewFrom + "\nWHERE p.id = $1\nLIMIT 1"
	view, err := scanPostView(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &view, nil
}

func (repo *PostRepo) Create(ctx context.Context, post *entity.Post) error {
	const query = `
INSERT INTO posts (text, pub_date, author_id, group_id, image)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	pubDate := time.Now().UTC()
	var id int64
	err := repo.db.QueryRowContext(ctx, query,
		post.Text, pubDate, post.AuthorID, nullableID(post.GroupID), post.Image,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	post.ID = id
	post.PubDate = pubDate
	return nil
}

func (repo *PostRepo) Update(ctx context.Context, post *entity.Post) error {
	const query = `
UPDATE posts SET
       text     = $1,
       group_id = $2,
       image    = $3
WHERE id = $4`
	res, err := repo.db.ExecContext(ctx, query,
		post.Text, nullableID(post.GroupID), post.Image, post.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	return nil
}

// Delete removes the post. Its comments are removed by the foreign key.
func (repo *PostRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM posts WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	return nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
