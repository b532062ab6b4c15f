package data

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrAlreadySubscribed indicates the email already has a subscription row.
// Callers translate it into a friendly message rather than an error banner.
var ErrAlreadySubscribed = errors.New("email already subscribed")

// NewsletterRepository handles database operations for newsletter signups.
type NewsletterRepository struct {
	db *sqlx.DB
}

// NewNewsletterRepository creates a new NewsletterRepository.
func NewNewsletterRepository(db *sqlx.DB) *NewsletterRepository {
	return &NewsletterRepository{db: db}
}

// Subscribe inserts a subscription row. A duplicate email returns
// ErrAlreadySubscribed.
func (r *NewsletterRepository) Subscribe(ctx context.Context, sub *NewsletterSubscription) error {
	query := `INSERT INTO newsletter_subscriptions (email, source) VALUES (:email, :source)`
	if _, err := r.db.NamedExecContext(ctx, query, sub); err != nil {
		if isDuplicateEntry(err) {
			return ErrAlreadySubscribed
		}
		return fmt.Errorf("failed to create newsletter subscription: %w", err)
	}
	return nil
}

// List retrieves all subscriptions, newest first.
func (r *NewsletterRepository) List(ctx context.Context) ([]*NewsletterSubscription, error) {
	var subs []*NewsletterSubscription
	query := `SELECT id, email, source, created_at FROM newsletter_subscriptions ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &subs, query); err != nil {
		return nil, fmt.Errorf("failed to list newsletter subscriptions: %w", err)
	}
	return subs, nil
}
