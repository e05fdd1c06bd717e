package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pdfdesk/internal/convert"
)

type MockConverter struct {
	mock.Mock
}

func (m *MockConverter) Convert(ctx context.Context, pdfPath, docxPath string, pages convert.PageRange) error {
	args := m.Called(ctx, pdfPath, docxPath, pages)
	return args.Error(0)
}
