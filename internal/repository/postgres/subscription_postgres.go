package postgres

import (
	"context"
	"database/sql"

	"pdfdesk/internal/model"
	"pdfdesk/internal/repository"
)

// SubscriptionPostgres is a PostgreSQL implementation of repository.SubscriptionRepository.
type SubscriptionPostgres struct {
	db *sql.DB
}

// NewSubscriptionPostgres creates a new SubscriptionPostgres repository.
func NewSubscriptionPostgres(db *sql.DB) *SubscriptionPostgres {
	return &SubscriptionPostgres{db: db}
}

var _ repository.SubscriptionRepository = (*SubscriptionPostgres)(nil)

// Upsert inserts a subscription or refreshes checkout/status for an existing session key.
func (r *SubscriptionPostgres) Upsert(ctx context.Context, sub *model.Subscription) (*model.Subscription, error) {
	const q = `
		INSERT INTO subscriptions (id, session_key, checkout_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_key) DO UPDATE
		SET checkout_id = EXCLUDED.checkout_id,
		    status      = EXCLUDED.status,
		    updated_at  = EXCLUDED.updated_at
		RETURNING id, session_key, checkout_id, status, created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, q,
		sub.ID,
		sub.SessionKey,
		sub.CheckoutID,
		string(sub.Status),
		sub.CreatedAt,
		sub.UpdatedAt,
	)
	return scanSubscription(row)
}

// FindBySession fetches the subscription attached to a session key.
func (r *SubscriptionPostgres) FindBySession(ctx context.Context, sessionKey string) (*model.Subscription, error) {
	const q = `
		SELECT id, session_key, checkout_id, status, created_at, updated_at
		FROM subscriptions
		WHERE session_key = $1
	`
	return scanSubscription(r.db.QueryRowContext(ctx, q, sessionKey))
}

func scanSubscription(row *sql.Row) (*model.Subscription, error) {
	var (
		s      model.Subscription
		status string
	)
	if err := row.Scan(
		&s.ID,
		&s.SessionKey,
		&s.CheckoutID,
		&status,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.Status = model.SubscriptionStatus(status)
	return &s, nil
}
