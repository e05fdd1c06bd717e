package repository

import (
	"context"

	"pdfdesk/internal/model"
)

// SubscriptionRepository persists subscription records keyed by notes session.
// No business logic here, strictly persistence operations.
type SubscriptionRepository interface {
	// Upsert inserts the subscription or updates the existing row for the same session key.
	// Returns the stored record.
	Upsert(ctx context.Context, sub *model.Subscription) (*model.Subscription, error)

	// FindBySession returns the subscription for a session key, or sql.ErrNoRows.
	FindBySession(ctx context.Context, sessionKey string) (*model.Subscription, error)
}
