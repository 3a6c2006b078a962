package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dealflow/internal/port"
)

// MockDocumentStore is a mock implementation of port.DocumentStore.
type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) FindByNameContaining(ctx context.Context, parentID, substring string) ([]port.FileInfo, error) {
	args := m.Called(ctx, parentID, substring)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.FileInfo), args.Error(1)
}

func (m *MockDocumentStore) CreateFolder(ctx context.Context, parentID, name string) (string, error) {
	args := m.Called(ctx, parentID, name)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentStore) CreateTextDocument(ctx context.Context, folderID, title, body string) (string, error) {
	args := m.Called(ctx, folderID, title, body)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentStore) UploadFile(ctx context.Context, input port.UploadFileInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentStore) ExtractPlainText(ctx context.Context, fileID string) (string, error) {
	args := m.Called(ctx, fileID)
	return args.String(0), args.Error(1)
}
