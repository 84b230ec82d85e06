package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"slidedeck-backend/internal/models"
	"slidedeck-backend/internal/repository"
	"slidedeck-backend/internal/services"
	"slidedeck-backend/internal/worker"
)

type PlayerHandler struct {
	slideRepo *repository.SlideRepo
	lifecycle *services.LifecycleService
	redis     *redis.Client
}

func NewPlayerHandler(slideRepo *repository.SlideRepo, lifecycle *services.LifecycleService, redisClient *redis.Client) *PlayerHandler {
	return &PlayerHandler{
		slideRepo: slideRepo,
		lifecycle: lifecycle,
		redis:     redisClient,
	}
}

// GetPlayerData returns the presentation with fully decoded slide payloads
// for the playback client.
func (h *PlayerHandler) GetPlayerData(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "presentation_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid presentation ID", r))
		return
	}

	presentation, err := h.lifecycle.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	slides, err := h.slideRepo.ListByPresentation(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch slides", r))
		return
	}
	if slides == nil {
		slides = []*models.Slide{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"presentation": presentation,
		"settings":     presentation.Settings(),
		"slides":       slides,
		"total_slides": len(slides),
	})
}

// TrackProgress accepts a progress ping and acks unconditionally. The ping
// is queued for the worker pool; a queue failure is logged, never surfaced,
// so nothing blocks playback navigation.
func (h *PlayerHandler) TrackProgress(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "presentation_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid presentation ID", r))
		return
	}

	var ping models.ProgressPing
	if err := json.NewDecoder(r.Body).Decode(&ping); err == nil {
		ping.PresentationID = id
		if payload, err := json.Marshal(ping); err == nil && h.redis != nil {
			if err := h.redis.LPush(r.Context(), worker.ProgressQueue, payload).Err(); err != nil {
				log.Printf("Failed to queue progress ping for %s: %v", id, err)
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Progress tracked",
	})
}
