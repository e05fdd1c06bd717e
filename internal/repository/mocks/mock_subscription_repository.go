package mocks

import (
	"context"

	"pdfdesk/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Upsert(ctx context.Context, sub *model.Subscription) (*model.Subscription, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindBySession(ctx context.Context, sessionKey string) (*model.Subscription, error) {
	args := m.Called(ctx, sessionKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}
