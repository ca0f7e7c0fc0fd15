package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"preventivi/internal/domain"
	"preventivi/internal/service"
)

// MockQuoteService is a mock implementation of service.QuoteService.
type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) Calculate(ctx context.Context, doc domain.QuoteDocument) (*domain.QuoteDocument, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuoteDocument), args.Error(1)
}

func (m *MockQuoteService) NewDraft(ctx context.Context, ownerID uuid.UUID) (*domain.QuoteDocument, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuoteDocument), args.Error(1)
}

func (m *MockQuoteService) Create(ctx context.Context, input *service.SaveQuoteInput) (*domain.Quote, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteService) Update(ctx context.Context, input *service.SaveQuoteInput) (*domain.Quote, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteService) GetByID(ctx context.Context, ownerID, quoteID uuid.UUID) (*domain.Quote, error) {
	args := m.Called(ctx, ownerID, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteService) List(ctx context.Context, input *service.ListQuotesInput) ([]domain.QuoteSummary, int, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.QuoteSummary), args.Int(1), args.Error(2)
}

func (m *MockQuoteService) Trash(ctx context.Context, ownerID, quoteID uuid.UUID) error {
	args := m.Called(ctx, ownerID, quoteID)
	return args.Error(0)
}

func (m *MockQuoteService) Restore(ctx context.Context, ownerID, quoteID uuid.UUID) error {
	args := m.Called(ctx, ownerID, quoteID)
	return args.Error(0)
}

func (m *MockQuoteService) DeletePermanently(ctx context.Context, ownerID, quoteID uuid.UUID) error {
	args := m.Called(ctx, ownerID, quoteID)
	return args.Error(0)
}

func (m *MockQuoteService) EmptyTrash(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuoteService) PurgeExpired(ctx context.Context, retention time.Duration) (int64, error) {
	args := m.Called(ctx, retention)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuoteService) MoveToFolder(ctx context.Context, ownerID uuid.UUID, quoteIDs []uuid.UUID, folderID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID, quoteIDs, folderID)
	return args.Get(0).(int64), args.Error(1)
}
