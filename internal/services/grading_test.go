package services

import (
	"testing"

	"slidedeck-backend/internal/models"
)

func TestCheckAnswer(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		key     models.AnswerKey
		correct bool
	}{
		{"trimmed case-insensitive match", "  Paris ", models.AnswerKey{"paris"}, true},
		{"member of acceptable set", "b", models.AnswerKey{"a", "b", "c"}, true},
		{"uppercase member of set", "B", models.AnswerKey{"a", "b", "c"}, true},
		{"wrong answer", "d", models.AnswerKey{"a", "b", "c"}, false},
		{"true/false style", "TRUE", models.AnswerKey{"true"}, true},
		{"empty submission", "", models.AnswerKey{"paris"}, false},
		{"empty key", "anything", models.AnswerKey{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CheckAnswer(tc.answer, tc.key); got != tc.correct {
				t.Errorf("CheckAnswer(%q, %v) = %v, want %v", tc.answer, tc.key, got, tc.correct)
			}
		})
	}
}
