package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"preventivi/internal/domain"
	"preventivi/internal/port"
)

type companyRepo struct {
	db *sqlx.DB
}

// NewCompanyRepo creates a new PostgreSQL-backed CompanyRepository.
func NewCompanyRepo(db *sqlx.DB) port.CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.CompanyProfile, error) {
	var p domain.CompanyProfile
	err := r.db.GetContext(ctx, &p, "SELECT * FROM company_profiles WHERE user_id = $1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("companyRepo.GetByUser: %w", err)
	}
	return &p, nil
}

func (r *companyRepo) Upsert(ctx context.Context, p *domain.CompanyProfile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	p.UpdatedAt = now

	query := `INSERT INTO company_profiles (id, user_id, name, logo_url, vat_number, tax_code,
		street, postal_code, city, province, country, email, phone, website, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name, logo_url = EXCLUDED.logo_url, vat_number = EXCLUDED.vat_number,
			tax_code = EXCLUDED.tax_code, street = EXCLUDED.street, postal_code = EXCLUDED.postal_code,
			city = EXCLUDED.city, province = EXCLUDED.province, country = EXCLUDED.country,
			email = EXCLUDED.email, phone = EXCLUDED.phone, website = EXCLUDED.website,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID, p.UserID, p.Name, p.LogoURL, p.VATNumber, p.TaxCode,
		p.Street, p.PostalCode, p.City, p.Province, p.Country, p.Email, p.Phone, p.Website,
		now).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("companyRepo.Upsert: %w", err)
	}
	return nil
}
