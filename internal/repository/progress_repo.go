package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"slidedeck-backend/internal/models"
)

type ProgressRepo struct {
	pool *pgxpool.Pool
}

func NewProgressRepo(pool *pgxpool.Pool) *ProgressRepo {
	return &ProgressRepo{pool: pool}
}

func (r *ProgressRepo) Create(ctx context.Context, e *models.ProgressEvent) error {
	e.ID = uuid.New()

	query := `INSERT INTO progress_events (id, presentation_id, slide_number, completed, quiz_result)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		e.ID, e.PresentationID, e.SlideNumber, e.Completed, e.QuizResult,
	).Scan(&e.CreatedAt)
}

func (r *ProgressRepo) ListByPresentation(ctx context.Context, presentationID uuid.UUID) ([]*models.ProgressEvent, error) {
	query := `SELECT id, presentation_id, slide_number, completed, quiz_result, created_at
		FROM progress_events WHERE presentation_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, presentationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.ProgressEvent
	for rows.Next() {
		e := &models.ProgressEvent{}
		err := rows.Scan(&e.ID, &e.PresentationID, &e.SlideNumber, &e.Completed, &e.QuizResult, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}
