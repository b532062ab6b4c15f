package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ContentRepository handles database operations for persisted page content.
type ContentRepository struct {
	db *sqlx.DB
}

// NewContentRepository creates a new ContentRepository.
func NewContentRepository(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// GetByPage retrieves the persisted content row for a page.
// A missing row is not an error; callers fall back to the defaults table.
func (r *ContentRepository) GetByPage(ctx context.Context, pageName string) (*PageContent, error) {
	var row PageContent
	query := `SELECT id, page_name, content, updated_at FROM page_contents WHERE page_name = ?`
	if err := r.db.GetContext(ctx, &row, query, pageName); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get content for page '%s': %w", pageName, err)
	}
	return &row, nil
}

// Upsert replaces the full content document for a page, creating the row on
// first save. Saves are whole-document; there is no partial update.
func (r *ContentRepository) Upsert(ctx context.Context, pageName string, content []byte) error {
	now := time.Now()
	update := `UPDATE page_contents SET content = ?, updated_at = ? WHERE page_name = ?`
	result, err := r.db.ExecContext(ctx, update, content, now, pageName)
	if err != nil {
		return fmt.Errorf("failed to update content for page '%s': %w", pageName, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	insert := `INSERT INTO page_contents (page_name, content, updated_at) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, insert, pageName, content, now); err != nil {
		// Two first saves racing can both see zero updated rows; the unique
		// key on page_name turns the loser into a duplicate, so retry as an
		// update for last-write-wins semantics.
		if isDuplicateEntry(err) {
			if _, err := r.db.ExecContext(ctx, update, content, now, pageName); err != nil {
				return fmt.Errorf("failed to update content for page '%s': %w", pageName, err)
			}
			return nil
		}
		return fmt.Errorf("failed to insert content for page '%s': %w", pageName, err)
	}
	return nil
}
