package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"slidedeck-backend/internal/models"
	"slidedeck-backend/internal/repository"
	"slidedeck-backend/internal/services"
)

type EditorHandler struct {
	slideRepo *repository.SlideRepo
	lifecycle *services.LifecycleService
}

func NewEditorHandler(slideRepo *repository.SlideRepo, lifecycle *services.LifecycleService) *EditorHandler {
	return &EditorHandler{
		slideRepo: slideRepo,
		lifecycle: lifecycle,
	}
}

// EditorURL hands back the external agent's editor location for embedding.
func (h *EditorHandler) EditorURL(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"editor_url": presentation.GensparkProjectURL,
	})
}

type syncRequest struct {
	Slides []models.UpsertSlideRequest `json:"slides"`
}

// Sync bulk-upserts slides pushed back from the external editor.
func (h *EditorHandler) Sync(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "presentation_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid presentation ID", r))
		return
	}

	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if _, err := h.lifecycle.Get(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}

	for i := range req.Slides {
		slide := slideFromRequest(id, &req.Slides[i])
		if err := h.slideRepo.Upsert(r.Context(), slide); err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to sync slides", r))
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type generateQuizzesRequest struct {
	Frequency    string      `json:"frequency"`
	Count        int         `json:"count"`
	CustomSlides []uuid.UUID `json:"custom_slides"`
}

// GenerateQuizzes runs the placement planner and flags the chosen slides.
// Quiz content itself is authored in the external editor.
func (h *EditorHandler) GenerateQuizzes(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "presentation_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid presentation ID", r))
		return
	}

	var req generateQuizzesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	slides, err := h.slideRepo.ListByPresentation(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch slides", r))
		return
	}

	quizSlideIDs := services.PlanQuizSlides(slides, req.Frequency, req.Count, req.CustomSlides)

	if err := h.slideRepo.SetQuizEnabled(r.Context(), quizSlideIDs, true); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to flag quiz slides", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"quiz_slides": quizSlideIDs,
		"message":     "Quiz configuration prepared. Use the editor to generate quiz content.",
	})
}

type generateNarrationRequest struct {
	VoiceID  string      `json:"voice_id"`
	SlideIDs []uuid.UUID `json:"slide_ids"`
}

type narrationJob struct {
	SlideID uuid.UUID `json:"slide_id"`
	Text    string    `json:"text"`
	VoiceID string    `json:"voice_id"`
}

// GenerateNarration prepares synthesis jobs for an external TTS service.
// No audio is produced here.
func (h *EditorHandler) GenerateNarration(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "presentation_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid presentation ID", r))
		return
	}

	var req generateNarrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	slides, err := h.slideRepo.ListByPresentation(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch slides", r))
		return
	}

	wanted := make(map[uuid.UUID]bool, len(req.SlideIDs))
	for _, slideID := range req.SlideIDs {
		wanted[slideID] = true
	}

	jobs := []narrationJob{}
	for _, slide := range slides {
		if len(req.SlideIDs) > 0 && !wanted[slide.ID] {
			continue
		}
		jobs = append(jobs, narrationJob{
			SlideID: slide.ID,
			Text:    narrationText(slide),
			VoiceID: req.VoiceID,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"narration_jobs": jobs,
		"message":        "Narration jobs prepared. Synthesize audio externally.",
	})
}

func narrationText(slide *models.Slide) string {
	if slide.NarrationText != nil && *slide.NarrationText != "" {
		return *slide.NarrationText
	}
	if slide.Title != nil && *slide.Title != "" {
		return *slide.Title
	}
	return "Slide content"
}

type updateNarrationRequest struct {
	Narrations []struct {
		SlideID  uuid.UUID `json:"slide_id"`
		AudioURL string    `json:"audio_url"`
	} `json:"narrations"`
}

// UpdateNarration writes synthesized audio URLs back onto slides.
func (h *EditorHandler) UpdateNarration(w http.ResponseWriter, r *http.Request) {
	if _, err := uuid.Parse(chi.URLParam(r, "presentation_id")); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid presentation ID", r))
		return
	}

	var req updateNarrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	for _, narration := range req.Narrations {
		if err := h.slideRepo.UpdateNarrationAudioURL(r.Context(), narration.SlideID, narration.AudioURL); err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update narration", r))
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
