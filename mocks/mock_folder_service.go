package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"preventivi/internal/domain"
	"preventivi/internal/service"
)

// MockFolderService is a mock implementation of service.FolderService.
type MockFolderService struct {
	mock.Mock
}

func (m *MockFolderService) Create(ctx context.Context, input *service.CreateFolderInput) (*domain.Folder, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Folder), args.Error(1)
}

func (m *MockFolderService) GetByID(ctx context.Context, ownerID, folderID uuid.UUID) (*domain.Folder, error) {
	args := m.Called(ctx, ownerID, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Folder), args.Error(1)
}

func (m *MockFolderService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Folder, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Folder), args.Error(1)
}

func (m *MockFolderService) Update(ctx context.Context, input *service.UpdateFolderInput) (*domain.Folder, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Folder), args.Error(1)
}

func (m *MockFolderService) Delete(ctx context.Context, ownerID, folderID uuid.UUID, moveQuotesTo *uuid.UUID) error {
	args := m.Called(ctx, ownerID, folderID, moveQuotesTo)
	return args.Error(0)
}

func (m *MockFolderService) ListQuotes(ctx context.Context, ownerID uuid.UUID, folderID *uuid.UUID, state domain.RecordState, offset, limit int) ([]domain.QuoteSummary, int, error) {
	args := m.Called(ctx, ownerID, folderID, state, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.QuoteSummary), args.Int(1), args.Error(2)
}
