// Package payment creates and confirms subscription checkouts.
package payment

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when no checkout provider credentials are set.
var ErrNotConfigured = errors.New("checkout provider not configured")

// Confirmation is what the provider reports about a finished checkout.
type Confirmation struct {
	CheckoutID string
	// ClientReference is the notes session key passed to CreateSession.
	ClientReference string
	Paid            bool
}

// Checkout is the payment collaborator of the notes app.
type Checkout interface {
	// CreateSession starts a checkout for the configured price and returns
	// the URL the browser should be redirected to.
	CreateSession(ctx context.Context, clientReference string) (string, error)
	// Confirm looks a finished checkout up by its provider ID.
	Confirm(ctx context.Context, checkoutID string) (Confirmation, error)
}

// Unconfigured is used when the app runs without provider credentials.
type Unconfigured struct{}

func (Unconfigured) CreateSession(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}

func (Unconfigured) Confirm(context.Context, string) (Confirmation, error) {
	return Confirmation{}, ErrNotConfigured
}
