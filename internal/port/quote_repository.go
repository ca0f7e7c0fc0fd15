package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"preventivi/internal/domain"
)

// QuoteRepository defines the contract for quote persistence.
// All query methods include ownerID to scope data to its owner.
type QuoteRepository interface {
	Create(ctx context.Context, quote *domain.Quote) error
	GetByID(ctx context.Context, ownerID, quoteID uuid.UUID) (*domain.Quote, error)
	Update(ctx context.Context, quote *domain.Quote) error
	List(ctx context.Context, ownerID uuid.UUID, filter domain.QuoteFilter) ([]domain.QuoteSummary, int, error)
	ListAll(ctx context.Context, ownerID uuid.UUID, state domain.RecordState) ([]domain.QuoteSummary, error)
	SetRecordState(ctx context.Context, ownerID, quoteID uuid.UUID, state domain.RecordState, trashedAt *time.Time) error
	SetArchiveKey(ctx context.Context, ownerID, quoteID uuid.UUID, key string) error
	SetStatus(ctx context.Context, ownerID, quoteID uuid.UUID, status domain.QuoteStatus) error
	Delete(ctx context.Context, ownerID, quoteID uuid.UUID) error
	DeleteTrashed(ctx context.Context, ownerID uuid.UUID) (int64, error)
	PurgeTrashedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	// MoveToFolder reassigns quotes atomically. It returns
	// domain.ErrQuoteOwnership without writing when any id is not owned.
	MoveToFolder(ctx context.Context, ownerID uuid.UUID, quoteIDs []uuid.UUID, folderID *uuid.UUID) (int64, error)
}
