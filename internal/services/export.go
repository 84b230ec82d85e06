package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"slidedeck-backend/internal/models"
	"slidedeck-backend/internal/repository"
)

const exporterUserAgent = "GenSpark-LMS-Exporter/1.0"

// ExportService snapshots a presentation and ships it out: a single
// best-effort POST for webhook exports, or a pointer to the agent's hosted
// artifact for Drive-style exports.
type ExportService struct {
	presRepo   *repository.PresentationRepo
	slideRepo  *repository.SlideRepo
	exportRepo *repository.ExportRepo
	client     *http.Client
}

func NewExportService(presRepo *repository.PresentationRepo, slideRepo *repository.SlideRepo, exportRepo *repository.ExportRepo, timeout time.Duration) *ExportService {
	return &ExportService{
		presRepo:   presRepo,
		slideRepo:  slideRepo,
		exportRepo: exportRepo,
		client:     &http.Client{Timeout: timeout},
	}
}

// BuildSnapshot assembles the export document. Stored JSON columns are
// embedded as-is so the snapshot carries decoded structures, not
// double-encoded strings. Pure; given identical inputs the marshaled
// snapshot is byte-identical.
func BuildSnapshot(p *models.Presentation, slides []*models.Slide) *models.ExportSnapshot {
	snapshot := &models.ExportSnapshot{
		PresentationID:     p.ID,
		GensparkProjectURL: p.GensparkProjectURL,
		OriginalFilename:   p.OriginalFilename,
		TotalSlides:        len(slides),
		CreatedAt:          p.CreatedAt,
		Settings:           p.Settings(),
		Slides:             make([]models.ExportSlide, 0, len(slides)),
	}

	for _, s := range slides {
		animations := s.AnimationsJSON
		if len(animations) == 0 || string(animations) == "null" {
			animations = json.RawMessage("[]")
		}
		snapshot.Slides = append(snapshot.Slides, models.ExportSlide{
			ID:                s.ID,
			SlideNumber:       s.SlideNumber,
			Title:             s.Title,
			Content:           s.ContentJSON,
			Animations:        animations,
			NarrationAudioURL: s.NarrationAudioURL,
			QuizEnabled:       s.QuizEnabled,
			QuizData:          s.QuizJSON,
		})
	}
	return snapshot
}

// Export runs one export attempt. Drive exports return the artifact pointer
// without a record; webhook exports always leave exactly one ExportRecord
// behind, pending → completed|error.
func (s *ExportService) Export(ctx context.Context, presentationID uuid.UUID, exportType, webhookOverride string) (*models.ExportResult, error) {
	p, err := s.presRepo.GetByID(ctx, presentationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Presentation not found"}
		}
		return nil, err
	}

	slides, err := s.slideRepo.ListByPresentation(ctx, presentationID)
	if err != nil {
		return nil, err
	}

	snapshot := BuildSnapshot(p, slides)

	if exportType == models.ExportTypeGoogleDrive {
		if p.GensparkProjectURL == nil || *p.GensparkProjectURL == "" {
			return nil, &ValidationError{Message: "Presentation has no generated artifact to export"}
		}
		return &models.ExportResult{
			ExportType:  models.ExportTypeGoogleDrive,
			DownloadURL: *p.GensparkProjectURL,
			Data:        snapshot,
			Message:     "Presentation ready for Google Drive. Use the project URL to access and export.",
		}, nil
	}

	// Webhook export
	webhookURL := webhookOverride
	if webhookURL == "" {
		webhookURL = p.Settings().WebhookURL
	}
	if webhookURL == "" {
		return nil, &ValidationError{Message: "No webhook URL configured"}
	}

	record := &models.ExportRecord{
		PresentationID: presentationID,
		WebhookURL:     &webhookURL,
	}
	if err := s.exportRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		s.exportRepo.MarkFailed(ctx, record.ID, err.Error())
		return nil, err
	}

	if err := postSnapshot(ctx, s.client, webhookURL, payload); err != nil {
		s.exportRepo.MarkFailed(ctx, record.ID, err.Error())
		return nil, &UpstreamError{Message: "Failed to send to webhook: " + err.Error()}
	}

	if err := s.exportRepo.MarkCompleted(ctx, record.ID, payload); err != nil {
		return nil, err
	}

	return &models.ExportResult{
		ExportID:   &record.ID,
		ExportType: models.ExportTypeWebhook,
		Message:    "Presentation exported successfully to webhook",
	}, nil
}

func (s *ExportService) History(ctx context.Context, presentationID uuid.UUID) ([]*models.ExportRecord, error) {
	return s.exportRepo.ListByPresentation(ctx, presentationID)
}

// postSnapshot performs the single delivery attempt. Any transport failure
// or non-2xx status is a failed export; there is no retry.
func postSnapshot(ctx context.Context, client *http.Client, url string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", exporterUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	return nil
}
