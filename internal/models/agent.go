package models

import "github.com/google/uuid"

// AgentRequest is the payload handed to the external GenSpark agent. The
// gateway only builds it; invocation happens out of process.
type AgentRequest struct {
	TaskType     string `json:"task_type"`
	TaskName     string `json:"task_name"`
	Query        string `json:"query"`
	Instructions string `json:"instructions"`
}

type CreateSlidesRequest struct {
	PresentationID uuid.UUID             `json:"presentation_id"`
	FileName       string                `json:"file_name"`
	Settings       *PresentationSettings `json:"settings"`
}

type AgentInfoRequest struct {
	PresentationID uuid.UUID `json:"presentation_id"`
	TaskID         string    `json:"task_id"`
	SessionID      string    `json:"session_id"`
	ProjectURL     string    `json:"project_url"`
}

type AgentCallbackRequest struct {
	TaskID     string `json:"task_id"`
	Status     string `json:"status"`
	ProjectURL string `json:"project_url"`
}

// StatusEvent is published over redis pubsub when a presentation's status
// changes, and fanned out to websocket subscribers.
type StatusEvent struct {
	PresentationID uuid.UUID `json:"presentation_id"`
	Status         string    `json:"status"`
	ProjectURL     string    `json:"project_url,omitempty"`
}
