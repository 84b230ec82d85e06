package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"slidedeck-backend/internal/models"
	"slidedeck-backend/internal/repository"
	"slidedeck-backend/internal/services"
)

const defaultUserID = "default_user"

type PresentationHandler struct {
	presRepo    *repository.PresentationRepo
	slideRepo   *repository.SlideRepo
	lifecycle   *services.LifecycleService
	fileInspect *services.FileInspectService
	storagePath string
}

func NewPresentationHandler(
	presRepo *repository.PresentationRepo,
	slideRepo *repository.SlideRepo,
	lifecycle *services.LifecycleService,
	fileInspect *services.FileInspectService,
	storagePath string,
) *PresentationHandler {
	return &PresentationHandler{
		presRepo:    presRepo,
		slideRepo:   slideRepo,
		lifecycle:   lifecycle,
		fileInspect: fileInspect,
		storagePath: storagePath,
	}
}

func (h *PresentationHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > 100*1024*1024 { // 100MB
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("FILE_TOO_LARGE", "File size exceeds 100MB limit", r))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, 100*1024*1024)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "No file provided", r))
		return
	}
	defer file.Close()

	userID := r.FormValue("user_id")
	if userID == "" {
		userID = defaultUserID
	}

	var settings *models.PresentationSettings
	if settingsStr := r.FormValue("settings"); settingsStr != "" {
		settings = &models.PresentationSettings{}
		if err := json.Unmarshal([]byte(settingsStr), settings); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid settings JSON", r))
			return
		}
		if err := validate.Struct(settings); err != nil {
			writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Invalid settings", validationFields(err), r))
			return
		}
	}

	fileType := services.DetectFileType(header.Filename)

	presentation, err := h.lifecycle.Create(r.Context(), header.Filename, fileType, userID, settings)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	// Persist the original upload so the agent environment can fetch it.
	storedPath := filepath.Join(h.storagePath, presentation.ID.String()+filepath.Ext(header.Filename))
	fileInfo := h.storeUpload(file, storedPath, header.Filename)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"presentation_id": presentation.ID,
		"file_name":       header.Filename,
		"file_info":       fileInfo,
		"settings":        presentation.SettingsJSON,
	})
}

// storeUpload writes the file to disk and probes it. Storage and probe
// failures degrade the response but never fail the upload.
func (h *PresentationHandler) storeUpload(file io.Reader, storedPath, filename string) *services.FileInfo {
	if err := os.MkdirAll(filepath.Dir(storedPath), 0o755); err != nil {
		log.Printf("Failed to create storage directory: %v", err)
		return nil
	}
	dst, err := os.Create(storedPath)
	if err != nil {
		log.Printf("Failed to store upload %s: %v", filename, err)
		return nil
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		log.Printf("Failed to write upload %s: %v", filename, err)
		return nil
	}

	info, err := h.fileInspect.Inspect(storedPath, filename)
	if err != nil {
		log.Printf("Upload probe failed for %s: %v", filename, err)
		return nil
	}
	return info
}

func (h *PresentationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = defaultUserID
	}

	presentations, err := h.presRepo.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch presentations", r))
		return
	}
	if presentations == nil {
		presentations = []*models.Presentation{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"presentations": presentations})
}

func (h *PresentationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
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
		"presentation": presentation,
		"slides":       slides,
	})
}

// UpdateGensparkInfo records agent task metadata mid-generation.
func (h *PresentationHandler) UpdateGensparkInfo(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid presentation ID", r))
		return
	}

	var req models.UpdateGensparkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	status := req.Status
	if status == "" {
		status = models.StatusProcessing
	}

	ok, err := h.presRepo.UpdateAgentInfo(r.Context(), id, req.TaskID, req.ProjectURL, status)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update presentation", r))
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Presentation not found", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *PresentationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid presentation ID", r))
		return
	}

	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Invalid status", validationFields(err), r))
		return
	}

	if err := h.lifecycle.SetStatus(r.Context(), id, req.Status); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *PresentationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid presentation ID", r))
		return
	}

	if err := h.lifecycle.Delete(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
