package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"preventivi/internal/composer"
	"preventivi/internal/domain"
	"preventivi/internal/service"
)

// MockExportService is a mock implementation of service.ExportService.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Compose(ctx context.Context, ownerID uuid.UUID, doc domain.QuoteDocument, templateID *uuid.UUID) (*composer.Composition, error) {
	args := m.Called(ctx, ownerID, doc, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*composer.Composition), args.Error(1)
}

func (m *MockExportService) RenderDocument(ctx context.Context, ownerID uuid.UUID, doc domain.QuoteDocument, templateID *uuid.UUID, kind service.OutputKind) (*service.RenderedDocument, error) {
	args := m.Called(ctx, ownerID, doc, templateID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RenderedDocument), args.Error(1)
}

func (m *MockExportService) RenderQuote(ctx context.Context, ownerID, quoteID uuid.UUID, templateID *uuid.UUID, kind service.OutputKind) (*service.RenderedDocument, error) {
	args := m.Called(ctx, ownerID, quoteID, templateID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RenderedDocument), args.Error(1)
}

func (m *MockExportService) Archive(ctx context.Context, ownerID, quoteID uuid.UUID) (*service.ArchiveResult, error) {
	args := m.Called(ctx, ownerID, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArchiveResult), args.Error(1)
}

func (m *MockExportService) Send(ctx context.Context, input *service.SendQuoteInput) (*service.ArchiveResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArchiveResult), args.Error(1)
}

// ExportList writes the string returned by the first mocked value to w.
func (m *MockExportService) ExportList(ctx context.Context, ownerID uuid.UUID, state domain.RecordState, format domain.ExportFormat, w io.Writer) error {
	args := m.Called(ctx, ownerID, state, format, w)
	if body, ok := args.Get(0).(string); ok {
		if _, err := io.WriteString(w, body); err != nil {
			return err
		}
	}
	return args.Error(1)
}
