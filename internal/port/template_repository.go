package port

import (
	"context"

	"github.com/google/uuid"

	"preventivi/internal/domain"
)

// TemplateRepository defines the contract for document template persistence.
type TemplateRepository interface {
	// WithTx runs fn against a repository bound to a single transaction.
	WithTx(ctx context.Context, fn func(ctx context.Context, repo TemplateRepository) error) error
	Create(ctx context.Context, tmpl *domain.DocumentTemplate) error
	GetByID(ctx context.Context, ownerID, templateID uuid.UUID) (*domain.DocumentTemplate, error)
	GetDefault(ctx context.Context, ownerID uuid.UUID, documentType string) (*domain.DocumentTemplate, error)
	List(ctx context.Context, ownerID uuid.UUID, documentType string) ([]domain.DocumentTemplate, error)
	Update(ctx context.Context, tmpl *domain.DocumentTemplate) error
	Delete(ctx context.Context, ownerID, templateID uuid.UUID) error
	ClearDefault(ctx context.Context, ownerID uuid.UUID, documentType string) error
}
