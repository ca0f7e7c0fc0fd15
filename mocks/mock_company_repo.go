package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"preventivi/internal/domain"
)

// MockCompanyRepo is a mock implementation of port.CompanyRepository.
type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.CompanyProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyProfile), args.Error(1)
}

func (m *MockCompanyRepo) Upsert(ctx context.Context, profile *domain.CompanyProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
