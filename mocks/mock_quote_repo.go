package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"preventivi/internal/domain"
)

// MockQuoteRepo is a mock implementation of port.QuoteRepository.
type MockQuoteRepo struct {
	mock.Mock
}

func (m *MockQuoteRepo) Create(ctx context.Context, quote *domain.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockQuoteRepo) GetByID(ctx context.Context, ownerID, quoteID uuid.UUID) (*domain.Quote, error) {
	args := m.Called(ctx, ownerID, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteRepo) Update(ctx context.Context, quote *domain.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockQuoteRepo) List(ctx context.Context, ownerID uuid.UUID, filter domain.QuoteFilter) ([]domain.QuoteSummary, int, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.QuoteSummary), args.Int(1), args.Error(2)
}

func (m *MockQuoteRepo) ListAll(ctx context.Context, ownerID uuid.UUID, state domain.RecordState) ([]domain.QuoteSummary, error) {
	args := m.Called(ctx, ownerID, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuoteSummary), args.Error(1)
}

func (m *MockQuoteRepo) SetRecordState(ctx context.Context, ownerID, quoteID uuid.UUID, state domain.RecordState, trashedAt *time.Time) error {
	args := m.Called(ctx, ownerID, quoteID, state, trashedAt)
	return args.Error(0)
}

func (m *MockQuoteRepo) SetArchiveKey(ctx context.Context, ownerID, quoteID uuid.UUID, key string) error {
	args := m.Called(ctx, ownerID, quoteID, key)
	return args.Error(0)
}

func (m *MockQuoteRepo) SetStatus(ctx context.Context, ownerID, quoteID uuid.UUID, status domain.QuoteStatus) error {
	args := m.Called(ctx, ownerID, quoteID, status)
	return args.Error(0)
}

func (m *MockQuoteRepo) Delete(ctx context.Context, ownerID, quoteID uuid.UUID) error {
	args := m.Called(ctx, ownerID, quoteID)
	return args.Error(0)
}

func (m *MockQuoteRepo) DeleteTrashed(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuoteRepo) PurgeTrashedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuoteRepo) MoveToFolder(ctx context.Context, ownerID uuid.UUID, quoteIDs []uuid.UUID, folderID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID, quoteIDs, folderID)
	return args.Get(0).(int64), args.Error(1)
}
