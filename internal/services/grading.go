package services

import (
	"strings"

	"slidedeck-backend/internal/models"
)

// CheckAnswer grades a submitted answer against the acceptable set.
// Comparison is case-insensitive after trimming surrounding whitespace.
func CheckAnswer(answer string, key models.AnswerKey) bool {
	submitted := strings.TrimSpace(answer)
	for _, accepted := range key {
		if strings.EqualFold(submitted, strings.TrimSpace(accepted)) {
			return true
		}
	}
	return false
}
