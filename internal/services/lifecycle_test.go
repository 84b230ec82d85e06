package services

import (
	"testing"

	"slidedeck-backend/internal/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"upload to processing", models.StatusUploading, models.StatusProcessing, true},
		{"processing to completed", models.StatusProcessing, models.StatusCompleted, true},
		{"processing to error", models.StatusProcessing, models.StatusError, true},
		{"error retry", models.StatusError, models.StatusProcessing, true},
		{"same status idempotent", models.StatusProcessing, models.StatusProcessing, true},
		{"completed is terminal", models.StatusCompleted, models.StatusProcessing, false},
		{"no skipping upload", models.StatusUploading, models.StatusCompleted, false},
		{"no rewind from completed", models.StatusCompleted, models.StatusUploading, false},
		{"error cannot jump to completed", models.StatusError, models.StatusCompleted, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanTransition(tc.from, tc.to); got != tc.allowed {
				t.Errorf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.allowed)
			}
		})
	}
}
