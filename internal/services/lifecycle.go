package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"slidedeck-backend/internal/models"
	"slidedeck-backend/internal/repository"
)

// statusTransitions is the allowed edge set for presentation statuses.
// error → processing is the retry path; everything else is forward-only.
var statusTransitions = map[string][]string{
	models.StatusUploading:  {models.StatusProcessing, models.StatusError},
	models.StatusProcessing: {models.StatusCompleted, models.StatusError},
	models.StatusCompleted:  {},
	models.StatusError:      {models.StatusProcessing},
}

// CanTransition reports whether a presentation may move between the two
// statuses. Same-status writes are allowed (idempotent updates).
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type LifecycleService struct {
	presRepo *repository.PresentationRepo
}

func NewLifecycleService(presRepo *repository.PresentationRepo) *LifecycleService {
	return &LifecycleService{presRepo: presRepo}
}

// Create registers an uploaded deck and moves it straight into processing,
// since generation is kicked off as part of the same upload flow.
func (s *LifecycleService) Create(ctx context.Context, fileName, fileType, userID string, settings *models.PresentationSettings) (*models.Presentation, error) {
	if fileName == "" {
		return nil, &ValidationError{Fields: map[string]string{"file": "No file provided"}}
	}

	settingsJSON := json.RawMessage("{}")
	if settings != nil {
		b, err := json.Marshal(settings)
		if err != nil {
			return nil, &ValidationError{Fields: map[string]string{"settings": "Invalid settings payload"}}
		}
		settingsJSON = b
	}

	p := &models.Presentation{
		UserID:           userID,
		OriginalFilename: fileName,
		OriginalFileType: fileType,
		Status:           models.StatusProcessing,
		SettingsJSON:     settingsJSON,
	}
	if err := s.presRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *LifecycleService) Get(ctx context.Context, id uuid.UUID) (*models.Presentation, error) {
	p, err := s.presRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Presentation not found"}
		}
		return nil, err
	}
	return p, nil
}

// SetStatus applies a status change after checking the transition table.
func (s *LifecycleService) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if !CanTransition(p.Status, status) {
		return &ValidationError{
			Message: fmt.Sprintf("Cannot move presentation from %q to %q", p.Status, status),
		}
	}

	ok, err := s.presRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Message: "Presentation not found"}
	}
	return nil
}

// SetAgentInfo finalizes a presentation with the external agent's task id
// and hosted artifact URL, marking it completed.
func (s *LifecycleService) SetAgentInfo(ctx context.Context, id uuid.UUID, taskID, projectURL string) error {
	ok, err := s.presRepo.UpdateAgentInfo(ctx, id, taskID, projectURL, models.StatusCompleted)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Message: "Presentation not found"}
	}
	return nil
}

func (s *LifecycleService) Delete(ctx context.Context, id uuid.UUID) error {
	ok, err := s.presRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Message: "Presentation not found"}
	}
	return nil
}
