package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"preventivi/internal/domain"
	"preventivi/internal/port"
)

// MockTemplateRepo is a mock implementation of port.TemplateRepository.
// WithTx runs fn against the mock itself so expectations set on it cover
// calls made inside the transaction.
type MockTemplateRepo struct {
	mock.Mock
}

func (m *MockTemplateRepo) WithTx(ctx context.Context, fn func(ctx context.Context, repo port.TemplateRepository) error) error {
	m.Called(ctx)
	return fn(ctx, m)
}

func (m *MockTemplateRepo) Create(ctx context.Context, tmpl *domain.DocumentTemplate) error {
	args := m.Called(ctx, tmpl)
	return args.Error(0)
}

func (m *MockTemplateRepo) GetByID(ctx context.Context, ownerID, templateID uuid.UUID) (*domain.DocumentTemplate, error) {
	args := m.Called(ctx, ownerID, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentTemplate), args.Error(1)
}

func (m *MockTemplateRepo) GetDefault(ctx context.Context, ownerID uuid.UUID, documentType string) (*domain.DocumentTemplate, error) {
	args := m.Called(ctx, ownerID, documentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentTemplate), args.Error(1)
}

func (m *MockTemplateRepo) List(ctx context.Context, ownerID uuid.UUID, documentType string) ([]domain.DocumentTemplate, error) {
	args := m.Called(ctx, ownerID, documentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentTemplate), args.Error(1)
}

func (m *MockTemplateRepo) Update(ctx context.Context, tmpl *domain.DocumentTemplate) error {
	args := m.Called(ctx, tmpl)
	return args.Error(0)
}

func (m *MockTemplateRepo) Delete(ctx context.Context, ownerID, templateID uuid.UUID) error {
	args := m.Called(ctx, ownerID, templateID)
	return args.Error(0)
}

func (m *MockTemplateRepo) ClearDefault(ctx context.Context, ownerID uuid.UUID, documentType string) error {
	args := m.Called(ctx, ownerID, documentType)
	return args.Error(0)
}
