package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"slidedeck-backend/internal/models"
)

type PresentationRepo struct {
	pool *pgxpool.Pool
}

func NewPresentationRepo(pool *pgxpool.Pool) *PresentationRepo {
	return &PresentationRepo{pool: pool}
}

func (r *PresentationRepo) Create(ctx context.Context, p *models.Presentation) error {
	p.ID = uuid.New()
	if len(p.SettingsJSON) == 0 {
		p.SettingsJSON = json.RawMessage("{}")
	}

	query := `INSERT INTO presentations (id, user_id, original_filename, original_file_type, status, settings)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		p.ID, p.UserID, p.OriginalFilename, p.OriginalFileType, p.Status, p.SettingsJSON,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *PresentationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Presentation, error) {
	p := &models.Presentation{}
	query := `SELECT id, user_id, original_filename, original_file_type, genspark_task_id,
		genspark_project_url, status, settings, created_at, updated_at
		FROM presentations WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.UserID, &p.OriginalFilename, &p.OriginalFileType, &p.GensparkTaskID,
		&p.GensparkProjectURL, &p.Status, &p.SettingsJSON, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetByTaskID resolves an agent callback's task id back to its presentation.
func (r *PresentationRepo) GetByTaskID(ctx context.Context, taskID string) (*models.Presentation, error) {
	p := &models.Presentation{}
	query := `SELECT id, user_id, original_filename, original_file_type, genspark_task_id,
		genspark_project_url, status, settings, created_at, updated_at
		FROM presentations WHERE genspark_task_id = $1`

	err := r.pool.QueryRow(ctx, query, taskID).Scan(
		&p.ID, &p.UserID, &p.OriginalFilename, &p.OriginalFileType, &p.GensparkTaskID,
		&p.GensparkProjectURL, &p.Status, &p.SettingsJSON, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PresentationRepo) ListByUser(ctx context.Context, userID string) ([]*models.Presentation, error) {
	query := `SELECT id, user_id, original_filename, original_file_type, genspark_task_id,
		genspark_project_url, status, settings, created_at, updated_at
		FROM presentations WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presentations []*models.Presentation
	for rows.Next() {
		p := &models.Presentation{}
		err := rows.Scan(
			&p.ID, &p.UserID, &p.OriginalFilename, &p.OriginalFileType, &p.GensparkTaskID,
			&p.GensparkProjectURL, &p.Status, &p.SettingsJSON, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		presentations = append(presentations, p)
	}
	return presentations, nil
}

func (r *PresentationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		"UPDATE presentations SET status = $1, updated_at = NOW() WHERE id = $2",
		status, id,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PresentationRepo) UpdateAgentInfo(ctx context.Context, id uuid.UUID, taskID, projectURL, status string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE presentations SET genspark_task_id = $1, genspark_project_url = $2,
		 status = $3, updated_at = NOW() WHERE id = $4`,
		taskID, projectURL, status, id,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PresentationRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	// Slides and exports go with it via ON DELETE CASCADE.
	tag, err := r.pool.Exec(ctx, "DELETE FROM presentations WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
