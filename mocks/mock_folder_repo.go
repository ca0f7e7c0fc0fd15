package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"preventivi/internal/domain"
)

// MockFolderRepo is a mock implementation of port.FolderRepository.
type MockFolderRepo struct {
	mock.Mock
}

func (m *MockFolderRepo) Create(ctx context.Context, folder *domain.Folder) error {
	args := m.Called(ctx, folder)
	return args.Error(0)
}

func (m *MockFolderRepo) GetByID(ctx context.Context, ownerID, folderID uuid.UUID) (*domain.Folder, error) {
	args := m.Called(ctx, ownerID, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Folder), args.Error(1)
}

func (m *MockFolderRepo) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Folder, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Folder), args.Error(1)
}

func (m *MockFolderRepo) Update(ctx context.Context, folder *domain.Folder) error {
	args := m.Called(ctx, folder)
	return args.Error(0)
}

func (m *MockFolderRepo) Delete(ctx context.Context, ownerID, folderID uuid.UUID, moveQuotesTo *uuid.UUID) error {
	args := m.Called(ctx, ownerID, folderID, moveQuotesTo)
	return args.Error(0)
}
