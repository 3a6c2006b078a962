package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dealflow/internal/domain"
)

// MockDealService is a mock implementation of service.DealService.
type MockDealService struct {
	mock.Mock
}

func (m *MockDealService) Process(ctx context.Context, sub *domain.DealSubmission, documentPath string) (*domain.ProcessingResult, error) {
	args := m.Called(ctx, sub, documentPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProcessingResult), args.Error(1)
}
