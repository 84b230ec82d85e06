package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"slidedeck-backend/internal/models"
	"slidedeck-backend/internal/repository"
)

type SlideHandler struct {
	slideRepo *repository.SlideRepo
}

func NewSlideHandler(slideRepo *repository.SlideRepo) *SlideHandler {
	return &SlideHandler{slideRepo: slideRepo}
}

func (h *SlideHandler) List(w http.ResponseWriter, r *http.Request) {
	presentationID, err := uuid.Parse(chi.URLParam(r, "presentation_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid presentation ID", r))
		return
	}

	slides, err := h.slideRepo.ListByPresentation(r.Context(), presentationID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch slides", r))
		return
	}
	if slides == nil {
		slides = []*models.Slide{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"slides": slides})
}

func (h *SlideHandler) Get(w http.ResponseWriter, r *http.Request) {
	slideID, err := uuid.Parse(chi.URLParam(r, "slide_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid slide ID", r))
		return
	}

	slide, err := h.slideRepo.GetByID(r.Context(), slideID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Slide not found", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"slide": slide})
}

func (h *SlideHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	presentationID, err := uuid.Parse(chi.URLParam(r, "presentation_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid presentation ID", r))
		return
	}

	var req models.UpsertSlideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Invalid slide", validationFields(err), r))
		return
	}

	slide := slideFromRequest(presentationID, &req)
	if err := h.slideRepo.Upsert(r.Context(), slide); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save slide", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"slide_id": slide.ID,
	})
}

func slideFromRequest(presentationID uuid.UUID, req *models.UpsertSlideRequest) *models.Slide {
	slide := &models.Slide{
		PresentationID:    presentationID,
		SlideNumber:       req.SlideNumber,
		Title:             req.Title,
		ContentJSON:       req.Content,
		AnimationsJSON:    req.Animations,
		NarrationText:     req.NarrationText,
		NarrationAudioURL: req.NarrationAudioURL,
		QuizEnabled:       req.QuizEnabled,
		QuizJSON:          req.QuizData,
	}
	if req.ID != nil {
		slide.ID = *req.ID
	}
	return slide
}

func (h *SlideHandler) UpdateAnimations(w http.ResponseWriter, r *http.Request) {
	slideID, err := uuid.Parse(chi.URLParam(r, "slide_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid slide ID", r))
		return
	}

	var req models.UpdateAnimationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if len(req.Animations) == 0 {
		req.Animations = json.RawMessage("[]")
	}

	if err := h.slideRepo.UpdateAnimations(r.Context(), slideID, req.Animations); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update animations", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *SlideHandler) UpdateNarration(w http.ResponseWriter, r *http.Request) {
	slideID, err := uuid.Parse(chi.URLParam(r, "slide_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid slide ID", r))
		return
	}

	var req models.UpdateSlideNarrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if err := h.slideRepo.UpdateNarration(r.Context(), slideID, req.NarrationText, req.NarrationAudioURL); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update narration", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *SlideHandler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	slideID, err := uuid.Parse(chi.URLParam(r, "slide_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid slide ID", r))
		return
	}

	var req models.UpdateSlideQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if err := h.slideRepo.UpdateQuiz(r.Context(), slideID, req.QuizEnabled, req.QuizData); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update quiz", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *SlideHandler) Delete(w http.ResponseWriter, r *http.Request) {
	slideID, err := uuid.Parse(chi.URLParam(r, "slide_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid slide ID", r))
		return
	}

	ok, err := h.slideRepo.Delete(r.Context(), slideID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete slide", r))
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Slide not found", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
