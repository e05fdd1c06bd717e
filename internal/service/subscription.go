package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pdfdesk/internal/model"
	"pdfdesk/internal/payment"
	"pdfdesk/internal/repository"
)

var (
	ErrCheckoutIDRequired = errors.New("checkout id is required")
	ErrCheckoutNotPaid    = errors.New("checkout not paid")
	ErrNoSubscriptionRepo = errors.New("subscription store not configured")
)

// SubscriptionService defines the checkout flow of the notes app.
type SubscriptionService interface {
	// Checkout starts a provider checkout for the session and returns its URL.
	Checkout(ctx context.Context, sessionKey string) (string, error)

	// Confirm verifies a finished checkout with the provider and records an
	// active subscription for the session that started it.
	Confirm(ctx context.Context, sessionKey, checkoutID string) (*model.Subscription, error)
}

type subscriptionService struct {
	checkout payment.Checkout
	repo     repository.SubscriptionRepository
}

// NewSubscriptionService constructs a new SubscriptionService. repo may be nil
// when no database is configured; Confirm then fails with ErrNoSubscriptionRepo.
func NewSubscriptionService(checkout payment.Checkout, repo repository.SubscriptionRepository) SubscriptionService {
	if checkout == nil {
		checkout = payment.Unconfigured{}
	}
	return &subscriptionService{checkout: checkout, repo: repo}
}

func (s *subscriptionService) Checkout(ctx context.Context, sessionKey string) (string, error) {
	return s.checkout.CreateSession(ctx, sessionKey)
}

func (s *subscriptionService) Confirm(ctx context.Context, sessionKey, checkoutID string) (*model.Subscription, error) {
	if checkoutID == "" {
		return nil, ErrCheckoutIDRequired
	}
	if s.repo == nil {
		return nil, ErrNoSubscriptionRepo
	}

	conf, err := s.checkout.Confirm(ctx, checkoutID)
	if err != nil {
		return nil, fmt.Errorf("confirm checkout: %w", err)
	}
	if !conf.Paid {
		return nil, ErrCheckoutNotPaid
	}

	// The provider echoes the session that started the checkout; prefer it
	// over the cookie of the browser landing on the success page.
	key := conf.ClientReference
	if key == "" {
		key = sessionKey
	}
	if key == "" {
		return nil, errors.New("no session to attach subscription to")
	}

	now := time.Now().UTC()
	return s.repo.Upsert(ctx, &model.Subscription{
		ID:         uuid.New().String(),
		SessionKey: key,
		CheckoutID: conf.CheckoutID,
		Status:     model.SubscriptionActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}
