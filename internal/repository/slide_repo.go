package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"slidedeck-backend/internal/models"
)

type SlideRepo struct {
	pool *pgxpool.Pool
}

func NewSlideRepo(pool *pgxpool.Pool) *SlideRepo {
	return &SlideRepo{pool: pool}
}

// Upsert inserts the slide, or refreshes every mutable field when a row with
// the same id exists. Last write wins; no conflict detection.
func (r *SlideRepo) Upsert(ctx context.Context, s *models.Slide) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if len(s.AnimationsJSON) == 0 {
		s.AnimationsJSON = json.RawMessage("[]")
	}
	if len(s.ContentJSON) == 0 {
		s.ContentJSON = json.RawMessage("null")
	}
	if len(s.QuizJSON) == 0 {
		s.QuizJSON = json.RawMessage("null")
	}

	query := `INSERT INTO slides (
			id, presentation_id, slide_number, title, content,
			animations, narration_text, narration_audio_url, quiz_enabled, quiz_data
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			slide_number = EXCLUDED.slide_number,
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			animations = EXCLUDED.animations,
			narration_text = EXCLUDED.narration_text,
			narration_audio_url = EXCLUDED.narration_audio_url,
			quiz_enabled = EXCLUDED.quiz_enabled,
			quiz_data = EXCLUDED.quiz_data,
			updated_at = NOW()
		RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		s.ID, s.PresentationID, s.SlideNumber, s.Title, s.ContentJSON,
		s.AnimationsJSON, s.NarrationText, s.NarrationAudioURL, s.QuizEnabled, s.QuizJSON,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *SlideRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Slide, error) {
	s := &models.Slide{}
	query := `SELECT id, presentation_id, slide_number, title, content, animations,
		narration_text, narration_audio_url, quiz_enabled, quiz_data, created_at, updated_at
		FROM slides WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.PresentationID, &s.SlideNumber, &s.Title, &s.ContentJSON, &s.AnimationsJSON,
		&s.NarrationText, &s.NarrationAudioURL, &s.QuizEnabled, &s.QuizJSON, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListByPresentation returns slides in slide_number order. Every downstream
// consumer depends on this ordering; gaps in the numbering are fine.
func (r *SlideRepo) ListByPresentation(ctx context.Context, presentationID uuid.UUID) ([]*models.Slide, error) {
	query := `SELECT id, presentation_id, slide_number, title, content, animations,
		narration_text, narration_audio_url, quiz_enabled, quiz_data, created_at, updated_at
		FROM slides WHERE presentation_id = $1 ORDER BY slide_number ASC`

	rows, err := r.pool.Query(ctx, query, presentationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slides []*models.Slide
	for rows.Next() {
		s := &models.Slide{}
		err := rows.Scan(
			&s.ID, &s.PresentationID, &s.SlideNumber, &s.Title, &s.ContentJSON, &s.AnimationsJSON,
			&s.NarrationText, &s.NarrationAudioURL, &s.QuizEnabled, &s.QuizJSON, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		slides = append(slides, s)
	}
	return slides, nil
}

func (r *SlideRepo) UpdateAnimations(ctx context.Context, id uuid.UUID, animations json.RawMessage) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE slides SET animations = $1, updated_at = NOW() WHERE id = $2",
		animations, id,
	)
	return err
}

func (r *SlideRepo) UpdateNarration(ctx context.Context, id uuid.UUID, narrationText, audioURL *string) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE slides SET narration_text = $1, narration_audio_url = $2, updated_at = NOW() WHERE id = $3",
		narrationText, audioURL, id,
	)
	return err
}

func (r *SlideRepo) UpdateNarrationAudioURL(ctx context.Context, id uuid.UUID, audioURL string) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE slides SET narration_audio_url = $1, updated_at = NOW() WHERE id = $2",
		audioURL, id,
	)
	return err
}

func (r *SlideRepo) UpdateQuiz(ctx context.Context, id uuid.UUID, enabled bool, quizData json.RawMessage) error {
	if len(quizData) == 0 {
		quizData = json.RawMessage("null")
	}
	_, err := r.pool.Exec(ctx,
		"UPDATE slides SET quiz_enabled = $1, quiz_data = $2, updated_at = NOW() WHERE id = $3",
		enabled, quizData, id,
	)
	return err
}

func (r *SlideRepo) SetQuizEnabled(ctx context.Context, ids []uuid.UUID, enabled bool) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx,
		"UPDATE slides SET quiz_enabled = $1, updated_at = NOW() WHERE id = ANY($2)",
		enabled, ids,
	)
	return err
}

// Delete removes one slide. Remaining slides keep their numbers; consumers
// tolerate gaps.
func (r *SlideRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM slides WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
