package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"slidedeck-backend/internal/models"
)

type ExportRepo struct {
	pool *pgxpool.Pool
}

func NewExportRepo(pool *pgxpool.Pool) *ExportRepo {
	return &ExportRepo{pool: pool}
}

// Create records a pending export attempt. Records are append-only; a row is
// only ever touched again to finalize its status.
func (r *ExportRepo) Create(ctx context.Context, e *models.ExportRecord) error {
	e.ID = uuid.New()
	e.ExportStatus = models.ExportPending

	query := `INSERT INTO exports (id, presentation_id, webhook_url, export_status)
		VALUES ($1, $2, $3, $4) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		e.ID, e.PresentationID, e.WebhookURL, e.ExportStatus,
	).Scan(&e.CreatedAt)
}

func (r *ExportRepo) MarkCompleted(ctx context.Context, id uuid.UUID, exportData json.RawMessage) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE exports SET export_status = $1, export_data = $2, completed_at = NOW() WHERE id = $3`,
		models.ExportCompleted, exportData, id,
	)
	return err
}

func (r *ExportRepo) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE exports SET export_status = $1, error_message = $2, completed_at = NOW() WHERE id = $3`,
		models.ExportError, errMsg, id,
	)
	return err
}

func (r *ExportRepo) ListByPresentation(ctx context.Context, presentationID uuid.UUID) ([]*models.ExportRecord, error) {
	query := `SELECT id, presentation_id, webhook_url, export_status, export_data,
		error_message, created_at, completed_at
		FROM exports WHERE presentation_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, presentationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.ExportRecord
	for rows.Next() {
		e := &models.ExportRecord{}
		err := rows.Scan(
			&e.ID, &e.PresentationID, &e.WebhookURL, &e.ExportStatus, &e.ExportData,
			&e.ErrorMessage, &e.CreatedAt, &e.CompletedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, e)
	}
	return records, nil
}
