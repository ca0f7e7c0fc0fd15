package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"preventivi/internal/composer"
	"preventivi/internal/domain"
	"preventivi/internal/service"
)

// MockTemplateService is a mock implementation of service.TemplateService.
type MockTemplateService struct {
	mock.Mock
}

func (m *MockTemplateService) Create(ctx context.Context, input *service.CreateTemplateInput) (*domain.DocumentTemplate, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentTemplate), args.Error(1)
}

func (m *MockTemplateService) GetByID(ctx context.Context, ownerID, templateID uuid.UUID) (*domain.DocumentTemplate, error) {
	args := m.Called(ctx, ownerID, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentTemplate), args.Error(1)
}

func (m *MockTemplateService) List(ctx context.Context, ownerID uuid.UUID, documentType string) ([]domain.DocumentTemplate, error) {
	args := m.Called(ctx, ownerID, documentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentTemplate), args.Error(1)
}

func (m *MockTemplateService) Update(ctx context.Context, input *service.UpdateTemplateInput) (*domain.DocumentTemplate, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentTemplate), args.Error(1)
}

func (m *MockTemplateService) Delete(ctx context.Context, ownerID, templateID uuid.UUID) error {
	args := m.Called(ctx, ownerID, templateID)
	return args.Error(0)
}

func (m *MockTemplateService) GetDefault(ctx context.Context, ownerID uuid.UUID, documentType string) (*domain.DocumentTemplate, error) {
	args := m.Called(ctx, ownerID, documentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentTemplate), args.Error(1)
}

func (m *MockTemplateService) EnsureDefault(ctx context.Context, ownerID uuid.UUID, documentType string) (*domain.DocumentTemplate, error) {
	args := m.Called(ctx, ownerID, documentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentTemplate), args.Error(1)
}

func (m *MockTemplateService) Resolve(ctx context.Context, ownerID uuid.UUID, templateID *uuid.UUID, documentType string) (*domain.DocumentTemplate, error) {
	args := m.Called(ctx, ownerID, templateID, documentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentTemplate), args.Error(1)
}

func (m *MockTemplateService) Validate(modules []domain.ModuleConfig) composer.ValidationResult {
	args := m.Called(modules)
	return args.Get(0).(composer.ValidationResult)
}
