package sqlite

import (
	"context"
	"fmt"
	"time"

	"yatube/internal/domain/entity"
	"yatube/internal/infra/db"
	"yatube/internal/repository"
)

type CommentRepo struct{ db db.Querier }

func NewCommentRepo(q db.Querier) repository.CommentRepository {
	return &CommentRepo{db: q}
}

func (repo *CommentRepo) ListByPost(ctx context.Context, postID int64) ([]repository.CommentView, error) {
	const query = `
SELECT c.id, c.post_id, c.author_id, c.text, c.pub_date, u.username
FROM comments c
INNER JOIN users u ON u.id = c.author_id
WHERE c.post_id = ?
ORDER BY c.pub_date DESC, c.id DESC`
	rows, err := repo.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ListByPost: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.CommentView, 0, 16)
	for rows.Next() {
		var c entity.Comment
		var username string
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Text, &c.PubDate, &username); err != nil {
			return nil, fmt.Errorf("ListByPost: Scan: %w", err)
		}
		result = append(result, repository.CommentView{Comment: &c, AuthorUsername: username})
	}
	return result, rows.Err()
}

func (repo *CommentRepo) Create(ctx context.Context, comment *entity.Comment) error {
	const query = `
INSERT INTO comments (post_id, author_id, text, pub_date)
VALUES (?, ?, ?, ?)`
	pubDate := time.Now().UTC()
	res, err := repo.db.ExecContext(ctx, query, comment.PostID, comment.AuthorID, comment.Text, pubDate)
	if err != nil {
		return fmt.Errorf("Create: ExecContext: %w", err)
	}
	if comment.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("Create: LastInsertId: %w", err)
	}
	comment.PubDate = pubDate
	return nil
}
