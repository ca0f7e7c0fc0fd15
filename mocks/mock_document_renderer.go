package mocks

import (
	"github.com/stretchr/testify/mock"

	"preventivi/internal/composer"
)

// MockDocumentRenderer is a mock implementation of port.DocumentRenderer.
type MockDocumentRenderer struct {
	mock.Mock
}

func (m *MockDocumentRenderer) RenderHTML(comp composer.Composition) ([]byte, error) {
	args := m.Called(comp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockDocumentRenderer) RenderPDF(comp composer.Composition) ([]byte, error) {
	args := m.Called(comp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
