package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"preventivi/internal/domain"
	"preventivi/internal/service"
)

// MockCompanyService is a mock implementation of service.CompanyService.
type MockCompanyService struct {
	mock.Mock
}

func (m *MockCompanyService) Get(ctx context.Context, userID uuid.UUID) (*domain.CompanyProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyProfile), args.Error(1)
}

func (m *MockCompanyService) Upsert(ctx context.Context, input *service.UpsertCompanyInput) (*domain.CompanyProfile, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyProfile), args.Error(1)
}
