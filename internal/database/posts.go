package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreatePost inserts a new post
func (db *DB) CreatePost(ctx context.Context, p *Post) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now()

	_, err := db.ExecContext(ctx, `
		INSERT INTO posts (id, author_id, body, likes, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, p.ID, p.AuthorID, p.Body, p.Likes, p.CreatedAt)
	return err
}

// ListPosts retrieves the feed, newest first
func (db *DB) ListPosts(ctx context.Context, opts ListOptions) ([]Post, error) {
	query := `SELECT id, author_id, body, likes, created_at FROM posts WHERE 1=1`
	args := []any{}

	if opts.Since != nil {
		query += " AND created_at >= ?"
		args = append(args, *opts.Since)
	}

	query += " ORDER BY created_at DESC"
	query += limitClause(opts.Limit, opts.Offset)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p := Post{}
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Body, &p.Likes, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

// LikePost increments a post's like counter and returns the new count.
// The update and the read share one transaction.
func (db *DB) LikePost(ctx context.Context, id string) (int, error) {
	var likes int
	err := db.Transaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `UPDATE posts SET likes = likes + 1 WHERE id = ?`, id)
		if err != nil {
			return err
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return fmt.Errorf("post %s: %w", id, ErrNotFound)
		}

		return tx.QueryRowContext(ctx, `SELECT likes FROM posts WHERE id = ?`, id).Scan(&likes)
	})
	if err != nil {
		return 0, err
	}
	return likes, nil
}
