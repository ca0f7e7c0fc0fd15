package port

import (
	"context"

	"github.com/google/uuid"

	"preventivi/internal/domain"
)

// FolderRepository defines the contract for folder persistence.
type FolderRepository interface {
	Create(ctx context.Context, folder *domain.Folder) error
	GetByID(ctx context.Context, ownerID, folderID uuid.UUID) (*domain.Folder, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]domain.Folder, error)
	Update(ctx context.Context, folder *domain.Folder) error
	// Delete removes a folder in one transaction: its quotes move to
	// moveQuotesTo (nil unassigns them) and its children are re-parented to
	// the deleted folder's parent.
	Delete(ctx context.Context, ownerID, folderID uuid.UUID, moveQuotesTo *uuid.UUID) error
}
