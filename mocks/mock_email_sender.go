package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"preventivi/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendQuote(ctx context.Context, msg port.QuoteEmail) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
