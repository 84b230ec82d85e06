package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"slidedeck-backend/internal/models"
)

func snapshotFixture() (*models.Presentation, []*models.Slide) {
	projectURL := "https://agent.example.com/p/abc"
	title := "Intro"
	p := &models.Presentation{
		ID:                 uuid.New(),
		UserID:             "default_user",
		OriginalFilename:   "deck.pptx",
		OriginalFileType:   models.FileTypePPTX,
		GensparkProjectURL: &projectURL,
		Status:             models.StatusCompleted,
		SettingsJSON:       json.RawMessage(`{"enable_quizzes":true,"quiz_frequency":"custom","quiz_count":2}`),
		CreatedAt:          time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	slides := []*models.Slide{
		{
			ID:             uuid.New(),
			PresentationID: p.ID,
			SlideNumber:    1,
			Title:          &title,
			ContentJSON:    json.RawMessage(`{"text":"Welcome","bullets":["a","b"]}`),
			AnimationsJSON: json.RawMessage(`[{"element_id":"t1","animation_type":"fade","duration":0.5,"delay":0,"order":1}]`),
			QuizEnabled:    true,
			QuizJSON:       json.RawMessage(`{"question":"Capital of France?","question_type":"short_answer","correct_answer":"paris"}`),
		},
		{
			ID:             uuid.New(),
			PresentationID: p.ID,
			SlideNumber:    2,
			ContentJSON:    json.RawMessage(`"Plain text slide"`),
		},
	}
	return p, slides
}

func TestBuildSnapshot_DecodedPayloads(t *testing.T) {
	p, slides := snapshotFixture()

	snapshot := BuildSnapshot(p, slides)

	if snapshot.TotalSlides != 2 {
		t.Errorf("Expected 2 slides, got %d", snapshot.TotalSlides)
	}
	if !snapshot.Settings.EnableQuizzes || snapshot.Settings.QuizCount != 2 {
		t.Errorf("Settings not decoded: %+v", snapshot.Settings)
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	// Content must be embedded as a structure, not a re-encoded string.
	var decoded map[string]interface{}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("Snapshot is not valid JSON: %v", err)
	}
	outSlides := decoded["slides"].([]interface{})
	first := outSlides[0].(map[string]interface{})
	if _, ok := first["content"].(map[string]interface{}); !ok {
		t.Errorf("Slide content was double-encoded: %T", first["content"])
	}
	quiz, ok := first["quiz_data"].(map[string]interface{})
	if !ok {
		t.Fatalf("Quiz data was double-encoded: %T", first["quiz_data"])
	}
	if quiz["question"] != "Capital of France?" {
		t.Errorf("Quiz question wrong: %v", quiz["question"])
	}

	// Missing animations default to an empty list, not null.
	second := outSlides[1].(map[string]interface{})
	if _, ok := second["animations"].([]interface{}); !ok {
		t.Errorf("Expected empty animation list, got %T", second["animations"])
	}
}

func TestBuildSnapshot_Deterministic(t *testing.T) {
	p, slides := snapshotFixture()

	first, err := json.Marshal(BuildSnapshot(p, slides))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	second, err := json.Marshal(BuildSnapshot(p, slides))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("Snapshots of unchanged state should be byte-identical")
	}
}

func TestPostSnapshot_Success(t *testing.T) {
	var gotUserAgent string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		buf := new(bytes.Buffer)
		buf.ReadFrom(r.Body)
		gotBody = buf.Bytes()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	payload := []byte(`{"presentation_id":"x"}`)
	client := &http.Client{Timeout: 5 * time.Second}

	if err := postSnapshot(context.Background(), client, server.URL, payload); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if gotUserAgent != "GenSpark-LMS-Exporter/1.0" {
		t.Errorf("Wrong user agent: %q", gotUserAgent)
	}
	if !bytes.Equal(gotBody, payload) {
		t.Errorf("Body not delivered intact: %s", gotBody)
	}
}

func TestPostSnapshot_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	err := postSnapshot(context.Background(), client, server.URL, []byte("{}"))
	if err == nil {
		t.Fatal("Expected error for non-2xx response")
	}
}

func TestPostSnapshot_TransportFailure(t *testing.T) {
	client := &http.Client{Timeout: time.Second}
	err := postSnapshot(context.Background(), client, "http://127.0.0.1:1/export", []byte("{}"))
	if err == nil {
		t.Fatal("Expected error for unreachable webhook")
	}
}
