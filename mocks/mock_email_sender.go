package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billforge/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendInvoice(ctx context.Context, snap *domain.InvoiceSnapshot, downloadURL string) error {
	args := m.Called(ctx, snap, downloadURL)
	return args.Error(0)
}
