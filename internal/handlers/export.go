package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"slidedeck-backend/internal/models"
	"slidedeck-backend/internal/services"
)

type ExportHandler struct {
	exports *services.ExportService
	gateway *services.AgentGateway
}

func NewExportHandler(exports *services.ExportService, gateway *services.AgentGateway) *ExportHandler {
	return &ExportHandler{
		exports: exports,
		gateway: gateway,
	}
}

func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "presentation_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid presentation ID", r))
		return
	}

	// Body is optional; an empty one means a webhook export with stored settings.
	var req models.ExportRequest
	json.NewDecoder(r.Body).Decode(&req)
	if err := validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Invalid export request", validationFields(err), r))
		return
	}
	if req.ExportType == "" {
		req.ExportType = models.ExportTypeWebhook
	}

	result, err := h.exports.Export(r.Context(), id, req.ExportType, req.WebhookURL)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"export_id":    result.ExportID,
		"export_type":  result.ExportType,
		"download_url": result.DownloadURL,
		"data":         result.Data,
		"message":      result.Message,
	})
}

func (h *ExportHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "presentation_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid presentation ID", r))
		return
	}

	records, err := h.exports.History(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch exports", r))
		return
	}
	if records == nil {
		records = []*models.ExportRecord{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"exports": records})
}

// Callback receives out-of-band completion notices from the agent.
func (h *ExportHandler) Callback(w http.ResponseWriter, r *http.Request) {
	var req models.AgentCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if err := h.gateway.HandleCallback(r.Context(), req.TaskID, req.Status, req.ProjectURL); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
