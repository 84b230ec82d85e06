package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Export kinds and statuses.
const (
	ExportTypeWebhook     = "webhook"
	ExportTypeGoogleDrive = "google_drive"

	ExportPending   = "pending"
	ExportCompleted = "completed"
	ExportError     = "error"
)

type ExportRecord struct {
	ID             uuid.UUID       `json:"id"`
	PresentationID uuid.UUID       `json:"presentation_id"`
	WebhookURL     *string         `json:"webhook_url"`
	ExportStatus   string          `json:"export_status"` // "pending" | "completed" | "error"
	ExportData     json.RawMessage `json:"export_data,omitempty"`
	ErrorMessage   *string         `json:"error_message,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
}

// ExportSnapshot is the payload delivered to a webhook or handed back for a
// Drive-style export. Slide payloads are fully decoded here, never
// double-encoded.
type ExportSnapshot struct {
	PresentationID     uuid.UUID            `json:"presentation_id"`
	GensparkProjectURL *string              `json:"genspark_project_url"`
	OriginalFilename   string               `json:"original_filename"`
	TotalSlides        int                  `json:"total_slides"`
	CreatedAt          time.Time            `json:"created_at"`
	Settings           PresentationSettings `json:"settings"`
	Slides             []ExportSlide        `json:"slides"`
}

type ExportSlide struct {
	ID                uuid.UUID       `json:"id"`
	SlideNumber       int             `json:"slide_number"`
	Title             *string         `json:"title"`
	Content           json.RawMessage `json:"content"`
	Animations        json.RawMessage `json:"animations"`
	NarrationAudioURL *string         `json:"narration_audio_url"`
	QuizEnabled       bool            `json:"quiz_enabled"`
	QuizData          json.RawMessage `json:"quiz_data"`
}

type ExportRequest struct {
	ExportType string `json:"export_type" validate:"omitempty,oneof=webhook google_drive"`
	WebhookURL string `json:"webhook_url" validate:"omitempty,url"`
}

type ExportResult struct {
	ExportID    *uuid.UUID      `json:"export_id,omitempty"`
	ExportType  string          `json:"export_type"`
	DownloadURL string          `json:"download_url,omitempty"`
	Data        *ExportSnapshot `json:"data,omitempty"`
	Message     string          `json:"message,omitempty"`
}
