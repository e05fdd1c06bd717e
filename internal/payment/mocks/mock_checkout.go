package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pdfdesk/internal/payment"
)

type MockCheckout struct {
	mock.Mock
}

func (m *MockCheckout) CreateSession(ctx context.Context, clientReference string) (string, error) {
	args := m.Called(ctx, clientReference)
	return args.String(0), args.Error(1)
}

func (m *MockCheckout) Confirm(ctx context.Context, checkoutID string) (payment.Confirmation, error) {
	args := m.Called(ctx, checkoutID)
	return args.Get(0).(payment.Confirmation), args.Error(1)
}
