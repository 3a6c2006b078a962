package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dealflow/internal/domain"
	"dealflow/internal/service"
)

// MockIntakeService is a mock implementation of service.IntakeService.
type MockIntakeService struct {
	mock.Mock
}

func (m *MockIntakeService) ProcessWebhook(ctx context.Context, payload *service.WebhookPayload) (*domain.ProcessingResult, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProcessingResult), args.Error(1)
}
