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

const folderSelect = `SELECT f.*,
	(SELECT COUNT(*) FROM quotes q WHERE q.folder_id = f.id AND q.record_state = 'attivo') AS quote_count
	FROM folders f`

type folderRepo struct {
	db *sqlx.DB
}

// NewFolderRepo creates a new PostgreSQL-backed FolderRepository.
func NewFolderRepo(db *sqlx.DB) port.FolderRepository {
	return &folderRepo{db: db}
}

func (r *folderRepo) Create(ctx context.Context, f *domain.Folder) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now

	query := `INSERT INTO folders (id, owner_id, name, description, color, icon, parent_id, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		f.ID, f.OwnerID, f.Name, f.Description, f.Color, f.Icon, f.ParentID, f.Position,
		f.CreatedAt, f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("folderRepo.Create: %w", err)
	}
	return nil
}

func (r *folderRepo) GetByID(ctx context.Context, ownerID, folderID uuid.UUID) (*domain.Folder, error) {
	var f domain.Folder
	err := r.db.GetContext(ctx, &f,
		folderSelect+" WHERE f.id = $1 AND f.owner_id = $2", folderID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFolderNotFound
		}
		return nil, fmt.Errorf("folderRepo.GetByID: %w", err)
	}
	return &f, nil
}

func (r *folderRepo) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Folder, error) {
	var folders []domain.Folder
	err := r.db.SelectContext(ctx, &folders,
		folderSelect+" WHERE f.owner_id = $1 ORDER BY f.position, f.name", ownerID)
	if err != nil {
		return nil, fmt.Errorf("folderRepo.List: %w", err)
	}
	return folders, nil
}

func (r *folderRepo) Update(ctx context.Context, f *domain.Folder) error {
	f.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE folders SET name = $1, description = $2, color = $3, icon = $4, parent_id = $5,
			position = $6, updated_at = $7
		 WHERE id = $8 AND owner_id = $9`,
		f.Name, f.Description, f.Color, f.Icon, f.ParentID, f.Position, f.UpdatedAt, f.ID, f.OwnerID)
	if err != nil {
		return fmt.Errorf("folderRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrFolderNotFound
	}
	return nil
}

func (r *folderRepo) Delete(ctx context.Context, ownerID, folderID uuid.UUID, moveQuotesTo *uuid.UUID) error {
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var parentID *uuid.UUID
		err := tx.GetContext(ctx, &parentID,
			"SELECT parent_id FROM folders WHERE id = $1 AND owner_id = $2 FOR UPDATE", folderID, ownerID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrFolderNotFound
			}
			return err
		}

		now := time.Now().UTC()
		if _, err := tx.ExecContext(ctx,
			"UPDATE quotes SET folder_id = $1, updated_at = $2 WHERE folder_id = $3 AND owner_id = $4",
			moveQuotesTo, now, folderID, ownerID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE folders SET parent_id = $1, updated_at = $2 WHERE parent_id = $3 AND owner_id = $4",
			parentID, now, folderID, ownerID); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, "DELETE FROM folders WHERE id = $1 AND owner_id = $2", folderID, ownerID)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrFolderNotFound) {
			return err
		}
		return fmt.Errorf("folderRepo.Delete: %w", err)
	}
	return nil
}
