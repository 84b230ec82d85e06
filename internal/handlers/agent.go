package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"slidedeck-backend/internal/models"
	"slidedeck-backend/internal/services"
)

type AgentHandler struct {
	gateway *services.AgentGateway
}

func NewAgentHandler(gateway *services.AgentGateway) *AgentHandler {
	return &AgentHandler{gateway: gateway}
}

// CreateSlides builds the generation request payload. The agent itself runs
// in an environment this service does not control; the caller forwards the
// payload there.
func (h *AgentHandler) CreateSlides(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSlidesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.PresentationID == uuid.Nil || req.FileName == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Missing required parameters", r))
		return
	}

	agentRequest, err := h.gateway.PrepareGeneration(r.Context(), req.PresentationID, req.FileName, req.Settings)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"presentation_id":  req.PresentationID,
		"genspark_request": agentRequest,
		"message":          "Ready to create slides. The editor will launch the agent.",
	})
}

// UpdateAgentInfo finalizes a presentation once the agent reports back.
func (h *AgentHandler) UpdateAgentInfo(w http.ResponseWriter, r *http.Request) {
	var req models.AgentInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.PresentationID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Missing presentation_id", r))
		return
	}

	taskID := req.TaskID
	if taskID == "" {
		taskID = req.SessionID
	}

	if err := h.gateway.ApplyResult(r.Context(), req.PresentationID, taskID, req.ProjectURL); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Agent info updated successfully",
	})
}
