package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PostRepository handles database operations for blog posts.
type PostRepository struct {
	db *sqlx.DB
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db}
}

// ListPublished retrieves published posts, newest first.
func (r *PostRepository) ListPublished(ctx context.Context) ([]*Post, error) {
	var posts []*Post
	query := `SELECT id, slug, title, body, published, created_at, updated_at FROM posts WHERE published = ? ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &posts, query, true); err != nil {
		return nil, fmt.Errorf("failed to list published posts: %w", err)
	}
	return posts, nil
}

// ListAll retrieves every post for the admin view, newest first.
func (r *PostRepository) ListAll(ctx context.Context) ([]*Post, error) {
	var posts []*Post
	query := `SELECT id, slug, title, body, published, created_at, updated_at FROM posts ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// GetBySlug retrieves a single post, or nil when missing.
func (r *PostRepository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	var post Post
	query := `SELECT id, slug, title, body, published, created_at, updated_at FROM posts WHERE slug = ?`
	if err := r.db.GetContext(ctx, &post, query, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get post by slug: %w", err)
	}
	return &post, nil
}

// Create inserts a new post and returns its ID.
func (r *PostRepository) Create(ctx context.Context, post *Post) (int64, error) {
	query := `INSERT INTO posts (slug, title, body, published) VALUES (:slug, :title, :body, :published)`
	res, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return 0, fmt.Errorf("failed to create post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get created post id: %w", err)
	}
	return id, nil
}

// Update updates an existing post.
func (r *PostRepository) Update(ctx context.Context, post *Post) error {
	query := `UPDATE posts SET slug = :slug, title = :title, body = :body, published = :published, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no post found to update with id %d", post.ID)
	}
	return nil
}

// Delete removes a post by its ID.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no post found to delete with id %d", id)
	}
	return nil
}
