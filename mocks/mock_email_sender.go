package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, toAddress, subject, body string) error {
	args := m.Called(ctx, toAddress, subject, body)
	return args.Error(0)
}
