package mocks

import (
	"context"

	"pdfdesk/internal/nlp"

	"github.com/stretchr/testify/mock"
)

type MockSummarizer struct {
	mock.Mock
}

func (m *MockSummarizer) Summarize(ctx context.Context, text string, b nlp.Bounds) (string, error) {
	args := m.Called(ctx, text, b)
	return args.String(0), args.Error(1)
}

type MockQuestionGenerator struct {
	mock.Mock
}

func (m *MockQuestionGenerator) Generate(ctx context.Context, text string, n int) ([]string, error) {
	args := m.Called(ctx, text, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
