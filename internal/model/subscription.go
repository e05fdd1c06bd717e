package model

import "time"

// SubscriptionStatus mirrors the checkout outcome recorded for a session.
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// Subscription records a completed checkout for one notes session.
// This is a pure domain model with no database-specific dependencies or tags.
type Subscription struct {
	ID         string             `json:"id"`
	SessionKey string             `json:"session_key"`
	CheckoutID string             `json:"checkout_id"`
	Status     SubscriptionStatus `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// Active reports whether the subscription currently grants premium access.
func (s *Subscription) Active() bool {
	return s != nil && s.Status == SubscriptionActive
}
