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

type templateRepo struct {
	db *sqlx.DB
	q  dbtx
}

// NewTemplateRepo creates a new PostgreSQL-backed TemplateRepository.
func NewTemplateRepo(db *sqlx.DB) port.TemplateRepository {
	return &templateRepo{db: db, q: db}
}

func (r *templateRepo) WithTx(ctx context.Context, fn func(ctx context.Context, repo port.TemplateRepository) error) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return fn(ctx, &templateRepo{db: r.db, q: tx})
	})
}

func (r *templateRepo) Create(ctx context.Context, t *domain.DocumentTemplate) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	query := `INSERT INTO document_templates (id, owner_id, name, description, document_type,
		module_composition, page_format, page_orientation, margins, custom_styles,
		is_default, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.q.ExecContext(ctx, query,
		t.ID, t.OwnerID, t.Name, t.Description, t.DocumentType,
		t.ModuleComposition, t.PageFormat, t.PageOrientation, t.Margins, t.CustomStyles,
		t.IsDefault, t.IsPublic, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("templateRepo.Create: %w", err)
	}
	return nil
}

func (r *templateRepo) GetByID(ctx context.Context, ownerID, templateID uuid.UUID) (*domain.DocumentTemplate, error) {
	var t domain.DocumentTemplate
	err := r.q.GetContext(ctx, &t,
		"SELECT * FROM document_templates WHERE id = $1 AND owner_id = $2", templateID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("templateRepo.GetByID: %w", err)
	}
	return &t, nil
}

func (r *templateRepo) GetDefault(ctx context.Context, ownerID uuid.UUID, documentType string) (*domain.DocumentTemplate, error) {
	var t domain.DocumentTemplate
	err := r.q.GetContext(ctx, &t,
		`SELECT * FROM document_templates
		 WHERE owner_id = $1 AND document_type = $2 AND is_default = TRUE
		 LIMIT 1`, ownerID, documentType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("templateRepo.GetDefault: %w", err)
	}
	return &t, nil
}

func (r *templateRepo) List(ctx context.Context, ownerID uuid.UUID, documentType string) ([]domain.DocumentTemplate, error) {
	query := "SELECT * FROM document_templates WHERE owner_id = $1"
	args := []interface{}{ownerID}
	if documentType != "" {
		query += " AND document_type = $2"
		args = append(args, documentType)
	}
	query += " ORDER BY is_default DESC, created_at DESC"

	var templates []domain.DocumentTemplate
	if err := r.q.SelectContext(ctx, &templates, query, args...); err != nil {
		return nil, fmt.Errorf("templateRepo.List: %w", err)
	}
	return templates, nil
}

func (r *templateRepo) Update(ctx context.Context, t *domain.DocumentTemplate) error {
	t.UpdatedAt = time.Now().UTC()
	result, err := r.q.ExecContext(ctx,
		`UPDATE document_templates SET name = $1, description = $2, module_composition = $3,
			page_format = $4, page_orientation = $5, margins = $6, custom_styles = $7,
			is_default = $8, is_public = $9, updated_at = $10
		 WHERE id = $11 AND owner_id = $12`,
		t.Name, t.Description, t.ModuleComposition, t.PageFormat, t.PageOrientation,
		t.Margins, t.CustomStyles, t.IsDefault, t.IsPublic, t.UpdatedAt, t.ID, t.OwnerID)
	if err != nil {
		return fmt.Errorf("templateRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}

func (r *templateRepo) Delete(ctx context.Context, ownerID, templateID uuid.UUID) error {
	result, err := r.q.ExecContext(ctx,
		"DELETE FROM document_templates WHERE id = $1 AND owner_id = $2", templateID, ownerID)
	if err != nil {
		return fmt.Errorf("templateRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}

func (r *templateRepo) ClearDefault(ctx context.Context, ownerID uuid.UUID, documentType string) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE document_templates SET is_default = FALSE, updated_at = $1
		 WHERE owner_id = $2 AND document_type = $3 AND is_default = TRUE`,
		time.Now().UTC(), ownerID, documentType)
	if err != nil {
		return fmt.Errorf("templateRepo.ClearDefault: %w", err)
	}
	return nil
}
