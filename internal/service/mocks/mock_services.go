package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"pdfdesk/internal/model"
	"pdfdesk/internal/quota"
)

type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) Convert(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64) (*model.Artifact, error) {
	args := m.Called(ctx, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Artifact), args.Error(1)
}

func (m *MockConversionService) Collect(ctx context.Context, a *model.Artifact) ([]byte, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockNotesService struct {
	mock.Mock
}

func (m *MockNotesService) Process(ctx context.Context, sess quota.Session, r io.Reader, originalFilename, contentType string, size int64) (*model.Notes, error) {
	args := m.Called(ctx, sess, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notes), args.Error(1)
}

type MockSubscriptionService struct {
	mock.Mock
}

func (m *MockSubscriptionService) Checkout(ctx context.Context, sessionKey string) (string, error) {
	args := m.Called(ctx, sessionKey)
	return args.String(0), args.Error(1)
}

func (m *MockSubscriptionService) Confirm(ctx context.Context, sessionKey, checkoutID string) (*model.Subscription, error) {
	args := m.Called(ctx, sessionKey, checkoutID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}
