package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dealflow/internal/port"
)

// MockTextGenerator is a mock implementation of port.TextGenerator.
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, task port.GenerationTask, input string) port.GenerationResult {
	args := m.Called(ctx, task, input)
	return args.Get(0).(port.GenerationResult)
}
