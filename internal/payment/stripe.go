package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"

	"pdfdesk/internal/config"
)

// Stripe implements Checkout with Stripe Checkout subscription sessions.
type Stripe struct {
	client     session.Client
	priceID    string
	successURL string
	cancelURL  string
}

// NewStripe builds a Stripe checkout client. hc carries the tracing transport;
// nil uses the library default.
func NewStripe(c config.StripeConfig, hc *http.Client, log zerolog.Logger) (*Stripe, error) {
	if c.SecretKey == "" {
		return nil, ErrNotConfigured
	}
	if c.PriceID == "" {
		return nil, errors.New("stripe: price id is required")
	}

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		HTTPClient:    hc,
		LeveledLogger: leveledLogger{log: log.With().Str("component", "stripe").Logger()},
	})

	return &Stripe{
		client:     session.Client{B: backend, Key: c.SecretKey},
		priceID:    c.PriceID,
		successURL: c.SuccessURL,
		cancelURL:  c.CancelURL,
	}, nil
}

func (s *Stripe) CreateSession(ctx context.Context, clientReference string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(s.priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.successURL),
		CancelURL:  stripe.String(s.cancelURL),
	}
	if clientReference != "" {
		params.ClientReferenceID = stripe.String(clientReference)
	}
	params.Context = ctx

	cs, err := s.client.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return cs.URL, nil
}

func (s *Stripe) Confirm(ctx context.Context, checkoutID string) (Confirmation, error) {
	if checkoutID == "" {
		return Confirmation{}, errors.New("checkout id is required")
	}
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	cs, err := s.client.Get(checkoutID, params)
	if err != nil {
		return Confirmation{}, fmt.Errorf("get checkout session: %w", err)
	}
	return Confirmation{
		CheckoutID:      cs.ID,
		ClientReference: cs.ClientReferenceID,
		Paid: cs.Status == stripe.CheckoutSessionStatusComplete &&
			cs.PaymentStatus != stripe.CheckoutSessionPaymentStatusUnpaid,
	}, nil
}

// leveledLogger routes stripe-go's internal logging into zerolog.
type leveledLogger struct {
	log zerolog.Logger
}

func (l leveledLogger) Debugf(format string, v ...interface{}) { l.log.Debug().Msgf(format, v...) }
func (l leveledLogger) Infof(format string, v ...interface{})  { l.log.Debug().Msgf(format, v...) }
func (l leveledLogger) Warnf(format string, v ...interface{})  { l.log.Warn().Msgf(format, v...) }
func (l leveledLogger) Errorf(format string, v ...interface{}) { l.log.Error().Msgf(format, v...) }
