package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Slide struct {
	ID                uuid.UUID       `json:"id"`
	PresentationID    uuid.UUID       `json:"presentation_id"`
	SlideNumber       int             `json:"slide_number"`
	Title             *string         `json:"title"`
	ContentJSON       json.RawMessage `json:"content"`
	AnimationsJSON    json.RawMessage `json:"animations"`
	NarrationText     *string         `json:"narration_text"`
	NarrationAudioURL *string         `json:"narration_audio_url"`
	QuizEnabled       bool            `json:"quiz_enabled"`
	QuizJSON          json.RawMessage `json:"quiz_data"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// Quiz decodes the stored quiz payload, or nil when the slide has none.
func (s *Slide) Quiz() *Quiz {
	if len(s.QuizJSON) == 0 || string(s.QuizJSON) == "null" {
		return nil
	}
	var q Quiz
	if err := json.Unmarshal(s.QuizJSON, &q); err != nil {
		return nil
	}
	return &q
}

type SlideAnimation struct {
	ElementID     string  `json:"element_id"`
	AnimationType string  `json:"animation_type"` // "fade" | "slide" | "zoom" | "none"
	Duration      float64 `json:"duration"`
	Delay         float64 `json:"delay"`
	Order         int     `json:"order"`
}

// SlideContent is the decoded form of a slide's content payload. Stored
// content is either a bare string or a {text, bullets, image} object; both
// shapes round-trip through this union unchanged.
type SlideContent struct {
	Kind    ContentKind
	Text    string
	Bullets []string
	Image   string
}

type ContentKind int

const (
	ContentPlainText ContentKind = iota
	ContentStructured
)

func (c *SlideContent) UnmarshalJSON(b []byte) error {
	var text string
	if err := json.Unmarshal(b, &text); err == nil {
		c.Kind = ContentPlainText
		c.Text = text
		c.Bullets = nil
		c.Image = ""
		return nil
	}

	var structured struct {
		Text    string   `json:"text"`
		Bullets []string `json:"bullets"`
		Image   string   `json:"image"`
	}
	if err := json.Unmarshal(b, &structured); err != nil {
		return fmt.Errorf("slide content is neither plain text nor structured: %w", err)
	}
	c.Kind = ContentStructured
	c.Text = structured.Text
	c.Bullets = structured.Bullets
	c.Image = structured.Image
	return nil
}

func (c SlideContent) MarshalJSON() ([]byte, error) {
	if c.Kind == ContentPlainText {
		return json.Marshal(c.Text)
	}
	return json.Marshal(struct {
		Text    string   `json:"text"`
		Bullets []string `json:"bullets,omitempty"`
		Image   string   `json:"image,omitempty"`
	}{c.Text, c.Bullets, c.Image})
}

// UpsertSlideRequest carries one slide from the editor. ID is optional; a
// fresh one is assigned when absent.
type UpsertSlideRequest struct {
	ID                *uuid.UUID      `json:"id"`
	SlideNumber       int             `json:"slide_number" validate:"min=1"`
	Title             *string         `json:"title"`
	Content           json.RawMessage `json:"content"`
	Animations        json.RawMessage `json:"animations"`
	NarrationText     *string         `json:"narration_text"`
	NarrationAudioURL *string         `json:"narration_audio_url"`
	QuizEnabled       bool            `json:"quiz_enabled"`
	QuizData          json.RawMessage `json:"quiz_data"`
}

type UpdateAnimationsRequest struct {
	Animations json.RawMessage `json:"animations"`
}

type UpdateSlideNarrationRequest struct {
	NarrationText     *string `json:"narration_text"`
	NarrationAudioURL *string `json:"narration_audio_url"`
}

type UpdateSlideQuizRequest struct {
	QuizEnabled bool            `json:"quiz_enabled"`
	QuizData    json.RawMessage `json:"quiz_data"`
}
