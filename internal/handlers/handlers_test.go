package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"slidedeck-backend/internal/models"
)

// ─── Response Helper Tests ───

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	writeJSON(rr, http.StatusAccepted, map[string]interface{}{
		"presentation_id": "test-uuid",
	})

	if rr.Code != http.StatusAccepted {
		t.Errorf("Expected status 202, got %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got %q", rr.Header().Get("Content-Type"))
	}

	var result map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["presentation_id"] != "test-uuid" {
		t.Errorf("Expected presentation_id 'test-uuid', got %v", result["presentation_id"])
	}
}

func TestErrorResp(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/presentations/x", nil)
	req.Header.Set("X-Request-ID", "req-123")

	resp := errorResp("NOT_FOUND", "Presentation not found", req)

	if resp.Error.Code != "NOT_FOUND" {
		t.Errorf("Expected code NOT_FOUND, got %q", resp.Error.Code)
	}
	if resp.Error.RequestID != "req-123" {
		t.Errorf("Expected request id propagated, got %q", resp.Error.RequestID)
	}
}

// ─── Settings Validation Tests ───

func TestSettingsValidation(t *testing.T) {
	tests := []struct {
		name     string
		settings models.PresentationSettings
		valid    bool
	}{
		{"empty settings", models.PresentationSettings{}, true},
		{"after_each frequency", models.PresentationSettings{EnableQuizzes: true, QuizFrequency: "after_each"}, true},
		{"custom with count", models.PresentationSettings{EnableQuizzes: true, QuizFrequency: "custom", QuizCount: 3}, true},
		{"bad frequency", models.PresentationSettings{QuizFrequency: "hourly"}, false},
		{"bad webhook url", models.PresentationSettings{WebhookURL: "not a url"}, false},
		{"good webhook url", models.PresentationSettings{WebhookURL: "https://example.com/hook"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validate.Struct(&tc.settings)
			if tc.valid && err != nil {
				t.Errorf("Expected valid, got %v", err)
			}
			if !tc.valid && err == nil {
				t.Error("Expected validation failure")
			}
		})
	}
}

// ─── Quiz Generation Request Parsing ───

func TestGenerateQuizzesRequest_Parsing(t *testing.T) {
	body := []byte(`{"frequency":"custom","count":3,"custom_slides":[]}`)

	var req generateQuizzesRequest
	if err := json.Unmarshal(body, &req); err != nil {
		t.Fatalf("Failed to parse request body: %v", err)
	}

	if req.Frequency != "custom" {
		t.Errorf("Expected frequency 'custom', got %q", req.Frequency)
	}
	if req.Count != 3 {
		t.Errorf("Expected count 3, got %d", req.Count)
	}
}

// ─── Player Progress Tests ───

func newPlayerRouter(h *PlayerHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/player/{presentation_id}/progress", h.TrackProgress)
	return r
}

func TestTrackProgress_AlwaysAcks(t *testing.T) {
	h := NewPlayerHandler(nil, nil, nil)
	router := newPlayerRouter(h)

	body := []byte(`{"slide_number":3,"completed":false}`)
	req := httptest.NewRequest(http.MethodPost,
		"/api/player/3f1c0b42-92be-4b3f-94a8-0d4f0e36a218/progress", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Progress ping must always ack, got %d", rr.Code)
	}
}

func TestTrackProgress_MalformedBodyStillAcks(t *testing.T) {
	h := NewPlayerHandler(nil, nil, nil)
	router := newPlayerRouter(h)

	req := httptest.NewRequest(http.MethodPost,
		"/api/player/3f1c0b42-92be-4b3f-94a8-0d4f0e36a218/progress", bytes.NewReader([]byte("not json")))
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Malformed pings are dropped, not rejected; got %d", rr.Code)
	}
}

func TestTrackProgress_InvalidID(t *testing.T) {
	h := NewPlayerHandler(nil, nil, nil)
	router := newPlayerRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/api/player/not-a-uuid/progress", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid presentation id, got %d", rr.Code)
	}
}

// ─── Export Request Parsing ───

func TestExportRequest_Defaults(t *testing.T) {
	var req models.ExportRequest
	json.Unmarshal([]byte(`{}`), &req)

	if err := validate.Struct(&req); err != nil {
		t.Errorf("Empty export request should validate: %v", err)
	}

	json.Unmarshal([]byte(`{"export_type":"ftp"}`), &req)
	if err := validate.Struct(&req); err == nil {
		t.Error("Unknown export type should fail validation")
	}
}
