package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ProgressPing is what the player posts after each transition. Delivery is
// fire-and-forget: the handler queues it and always acks.
type ProgressPing struct {
	PresentationID uuid.UUID       `json:"presentation_id"`
	SlideNumber    int             `json:"slide_number"`
	Completed      bool            `json:"completed"`
	QuizResult     json.RawMessage `json:"quiz_result,omitempty"`
}

type ProgressEvent struct {
	ID             uuid.UUID       `json:"id"`
	PresentationID uuid.UUID       `json:"presentation_id"`
	SlideNumber    int             `json:"slide_number"`
	Completed      bool            `json:"completed"`
	QuizResult     json.RawMessage `json:"quiz_result,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
