package port

import (
	"context"

	"github.com/google/uuid"

	"preventivi/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// CompanyRepository defines the contract for company profile persistence.
// A user has at most one profile.
type CompanyRepository interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (*domain.CompanyProfile, error)
	Upsert(ctx context.Context, profile *domain.CompanyProfile) error
}
