package services

import (
	"strings"
	"testing"

	"slidedeck-backend/internal/models"
)

func TestBuildAgentRequest_TaskName(t *testing.T) {
	tests := []struct {
		fileName string
		taskName string
	}{
		{"deck.pptx", "deck"},
		{"Annual Report.PDF", "Annual Report"},
		{"lecture.notes.pdf", "lecture.notes"},
		{"no-extension", "no-extension"},
	}

	for _, tc := range tests {
		t.Run(tc.fileName, func(t *testing.T) {
			req := BuildAgentRequest(tc.fileName, nil)
			if req.TaskName != tc.taskName {
				t.Errorf("Expected task name %q, got %q", tc.taskName, req.TaskName)
			}
		})
	}
}

func TestBuildAgentRequest_Query(t *testing.T) {
	req := BuildAgentRequest("deck.pptx", nil)

	if req.TaskType != "slides" {
		t.Errorf("Expected task type slides, got %q", req.TaskType)
	}
	if !strings.Contains(req.Query, `"deck.pptx"`) {
		t.Errorf("Query should name the file: %q", req.Query)
	}
}

func TestBuildAgentRequest_SourceKind(t *testing.T) {
	pdfReq := BuildAgentRequest("deck.pdf", nil)
	if !strings.Contains(pdfReq.Instructions, "uploaded PDF presentation") {
		t.Error("PDF uploads should be described as PDF")
	}

	pptxReq := BuildAgentRequest("deck.pptx", nil)
	if !strings.Contains(pptxReq.Instructions, "uploaded PowerPoint presentation") {
		t.Error("Non-PDF uploads should be described as PowerPoint")
	}
}

func TestBuildAgentRequest_ConditionalInstructions(t *testing.T) {
	bare := BuildAgentRequest("deck.pptx", &models.PresentationSettings{})
	if strings.Contains(bare.Instructions, "quiz questions") {
		t.Error("Quiz note should be absent when quizzes are disabled")
	}
	if strings.Contains(bare.Instructions, "audio narration") {
		t.Error("Narration note should be absent when narration is disabled")
	}

	full := BuildAgentRequest("deck.pptx", &models.PresentationSettings{
		EnableQuizzes:   true,
		EnableNarration: true,
	})
	if !strings.Contains(full.Instructions, "quiz questions") {
		t.Error("Quiz note missing when quizzes are enabled")
	}
	if !strings.Contains(full.Instructions, "audio narration") {
		t.Error("Narration note missing when narration is enabled")
	}
}
