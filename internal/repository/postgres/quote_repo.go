package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"preventivi/internal/domain"
	"preventivi/internal/port"
)

const quoteSummaryColumns = `id, folder_id, number, subject, status, recipient_name, gross_total,
	record_state, trashed_at, created_at, updated_at`

type quoteRepo struct {
	db *sqlx.DB
}

// NewQuoteRepo creates a new PostgreSQL-backed QuoteRepository.
func NewQuoteRepo(db *sqlx.DB) port.QuoteRepository {
	return &quoteRepo{db: db}
}

func (r *quoteRepo) Create(ctx context.Context, q *domain.Quote) error {
	now := time.Now().UTC()
	q.CreatedAt = now
	q.UpdatedAt = now
	if q.RecordState == "" {
		q.RecordState = domain.RecordStateActive
	}

	query := `INSERT INTO quotes (id, owner_id, folder_id, template_id, number, subject, status,
		recipient_name, gross_total, document, record_state, trashed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		q.ID, q.OwnerID, q.FolderID, q.TemplateID, q.Number, q.Subject, q.Status,
		q.RecipientName, q.GrossTotal, q.Document, q.RecordState, q.TrashedAt,
		q.CreatedAt, q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("quoteRepo.Create: %w", err)
	}
	return nil
}

func (r *quoteRepo) GetByID(ctx context.Context, ownerID, quoteID uuid.UUID) (*domain.Quote, error) {
	var q domain.Quote
	err := r.db.GetContext(ctx, &q,
		"SELECT * FROM quotes WHERE id = $1 AND owner_id = $2", quoteID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("quoteRepo.GetByID: %w", err)
	}
	return &q, nil
}

func (r *quoteRepo) Update(ctx context.Context, q *domain.Quote) error {
	q.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE quotes SET folder_id = $1, template_id = $2, number = $3, subject = $4, status = $5,
			recipient_name = $6, gross_total = $7, document = $8, updated_at = $9
		 WHERE id = $10 AND owner_id = $11`,
		q.FolderID, q.TemplateID, q.Number, q.Subject, q.Status,
		q.RecipientName, q.GrossTotal, q.Document, q.UpdatedAt, q.ID, q.OwnerID)
	if err != nil {
		return fmt.Errorf("quoteRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}

func (r *quoteRepo) List(ctx context.Context, ownerID uuid.UUID, f domain.QuoteFilter) ([]domain.QuoteSummary, int, error) {
	where, args := quoteFilterClause(ownerID, f)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM quotes WHERE "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("quoteRepo.List count: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM quotes WHERE %s ORDER BY updated_at DESC LIMIT $%d OFFSET $%d`,
		quoteSummaryColumns, where, len(args)-1, len(args))

	var quotes []domain.QuoteSummary
	if err := r.db.SelectContext(ctx, &quotes, query, args...); err != nil {
		return nil, 0, fmt.Errorf("quoteRepo.List: %w", err)
	}
	return quotes, total, nil
}

func (r *quoteRepo) ListAll(ctx context.Context, ownerID uuid.UUID, state domain.RecordState) ([]domain.QuoteSummary, error) {
	var quotes []domain.QuoteSummary
	err := r.db.SelectContext(ctx, &quotes,
		`SELECT `+quoteSummaryColumns+` FROM quotes
		 WHERE owner_id = $1 AND record_state = $2 ORDER BY created_at`,
		ownerID, state)
	if err != nil {
		return nil, fmt.Errorf("quoteRepo.ListAll: %w", err)
	}
	return quotes, nil
}

func (r *quoteRepo) SetRecordState(ctx context.Context, ownerID, quoteID uuid.UUID, state domain.RecordState, trashedAt *time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE quotes SET record_state = $1, trashed_at = $2, updated_at = $3
		 WHERE id = $4 AND owner_id = $5`,
		state, trashedAt, time.Now().UTC(), quoteID, ownerID)
	if err != nil {
		return fmt.Errorf("quoteRepo.SetRecordState: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}

func (r *quoteRepo) SetArchiveKey(ctx context.Context, ownerID, quoteID uuid.UUID, key string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE quotes SET archive_key = $1 WHERE id = $2 AND owner_id = $3",
		key, quoteID, ownerID)
	if err != nil {
		return fmt.Errorf("quoteRepo.SetArchiveKey: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}

// SetStatus updates both the status column and the status inside the
// stored document.
func (r *quoteRepo) SetStatus(ctx context.Context, ownerID, quoteID uuid.UUID, status domain.QuoteStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE quotes SET status = $1,
			document = jsonb_set(document, '{metadati_preventivo,stato_preventivo}', to_jsonb($1::text)),
			updated_at = $2
		 WHERE id = $3 AND owner_id = $4`,
		status, time.Now().UTC(), quoteID, ownerID)
	if err != nil {
		return fmt.Errorf("quoteRepo.SetStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}

func (r *quoteRepo) Delete(ctx context.Context, ownerID, quoteID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM quotes WHERE id = $1 AND owner_id = $2", quoteID, ownerID)
	if err != nil {
		return fmt.Errorf("quoteRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}

func (r *quoteRepo) DeleteTrashed(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM quotes WHERE owner_id = $1 AND record_state = $2",
		ownerID, domain.RecordStateTrashed)
	if err != nil {
		return 0, fmt.Errorf("quoteRepo.DeleteTrashed: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

func (r *quoteRepo) PurgeTrashedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM quotes WHERE record_state = $1 AND trashed_at < $2",
		domain.RecordStateTrashed, cutoff)
	if err != nil {
		return 0, fmt.Errorf("quoteRepo.PurgeTrashedBefore: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

func (r *quoteRepo) MoveToFolder(ctx context.Context, ownerID uuid.UUID, quoteIDs []uuid.UUID, folderID *uuid.UUID) (int64, error) {
	if len(quoteIDs) == 0 {
		return 0, nil
	}

	var moved int64
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		countQuery, args, err := sqlx.In(
			"SELECT COUNT(*) FROM quotes WHERE owner_id = ? AND id IN (?)", ownerID, quoteIDs)
		if err != nil {
			return err
		}
		var owned int
		if err := tx.GetContext(ctx, &owned, tx.Rebind(countQuery), args...); err != nil {
			return err
		}
		if owned != len(uniqueIDs(quoteIDs)) {
			return domain.ErrQuoteOwnership
		}

		updateQuery, args, err := sqlx.In(
			"UPDATE quotes SET folder_id = ?, updated_at = ? WHERE owner_id = ? AND id IN (?)",
			folderID, time.Now().UTC(), ownerID, quoteIDs)
		if err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, tx.Rebind(updateQuery), args...)
		if err != nil {
			return err
		}
		moved, _ = result.RowsAffected()
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrQuoteOwnership) {
			return 0, err
		}
		return 0, fmt.Errorf("quoteRepo.MoveToFolder: %w", err)
	}
	return moved, nil
}

func quoteFilterClause(ownerID uuid.UUID, f domain.QuoteFilter) (string, []interface{}) {
	conds := []string{"owner_id = $1"}
	args := []interface{}{ownerID}

	if f.RecordState != "" {
		args = append(args, f.RecordState)
		conds = append(conds, fmt.Sprintf("record_state = $%d", len(args)))
	}
	switch {
	case f.FolderID != nil:
		args = append(args, *f.FolderID)
		conds = append(conds, fmt.Sprintf("folder_id = $%d", len(args)))
	case f.NoFolder:
		conds = append(conds, "folder_id IS NULL")
	}
	return strings.Join(conds, " AND "), args
}

func uniqueIDs(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
