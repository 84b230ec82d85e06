package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Presentation lifecycle statuses.
const (
	StatusUploading  = "uploading"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

// File types accepted on upload.
const (
	FileTypePDF  = "pdf"
	FileTypePPTX = "pptx"
)

type Presentation struct {
	ID                 uuid.UUID       `json:"id"`
	UserID             string          `json:"user_id"`
	OriginalFilename   string          `json:"original_filename"`
	OriginalFileType   string          `json:"original_file_type"` // "pdf" | "pptx"
	GensparkTaskID     *string         `json:"genspark_task_id"`
	GensparkProjectURL *string         `json:"genspark_project_url"`
	Status             string          `json:"status"` // "uploading" | "processing" | "completed" | "error"
	SettingsJSON       json.RawMessage `json:"settings"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// Settings decodes the stored settings payload. Absent or null settings
// decode to the zero value (everything disabled).
func (p *Presentation) Settings() PresentationSettings {
	var s PresentationSettings
	if len(p.SettingsJSON) > 0 {
		json.Unmarshal(p.SettingsJSON, &s)
	}
	return s
}

type PresentationSettings struct {
	EnableNarration bool        `json:"enable_narration"`
	NarrationVoice  string      `json:"narration_voice,omitempty"`
	EnableQuizzes   bool        `json:"enable_quizzes"`
	QuizFrequency   string      `json:"quiz_frequency,omitempty" validate:"omitempty,oneof=after_each custom"`
	QuizCount       int         `json:"quiz_count,omitempty" validate:"omitempty,min=1"`
	BrandTheme      *BrandTheme `json:"brand_theme,omitempty"`
	WebhookURL      string      `json:"webhook_url,omitempty" validate:"omitempty,url"`
}

type BrandTheme struct {
	PrimaryColor   string `json:"primary_color,omitempty"`
	SecondaryColor string `json:"secondary_color,omitempty"`
	FontFamily     string `json:"font_family,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=uploading processing completed error"`
}

type UpdateGensparkRequest struct {
	TaskID     string `json:"task_id"`
	SessionID  string `json:"session_id"`
	ProjectURL string `json:"project_url"`
	Status     string `json:"status"`
}
