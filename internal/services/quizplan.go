package services

import (
	"github.com/google/uuid"

	"slidedeck-backend/internal/models"
)

// Quiz placement frequencies.
const (
	FrequencyAfterEach = "after_each"
	FrequencyCustom    = "custom"
)

// PlanQuizSlides selects which slides get a quiz gate. Slides must already
// be in slide_number order.
//
// after_each takes every slide. An explicit custom list is intersected with
// the slides that actually exist; unknown ids are ignored. A target count N
// spaces quizzes evenly: with interval = len/N, the last slide of each
// interval-sized block is chosen. When N >= len the interval is zero and
// nothing is selected.
func PlanQuizSlides(slides []*models.Slide, frequency string, count int, customIDs []uuid.UUID) []uuid.UUID {
	selected := []uuid.UUID{}

	switch {
	case frequency == FrequencyAfterEach:
		for _, s := range slides {
			selected = append(selected, s.ID)
		}

	case len(customIDs) > 0:
		wanted := make(map[uuid.UUID]bool, len(customIDs))
		for _, id := range customIDs {
			wanted[id] = true
		}
		for _, s := range slides {
			if wanted[s.ID] {
				selected = append(selected, s.ID)
			}
		}

	case count > 0:
		interval := len(slides) / count
		if interval == 0 {
			// More quizzes requested than slides exist: select nothing.
			return selected
		}
		for i, s := range slides {
			if i%interval == interval-1 {
				selected = append(selected, s.ID)
			}
		}
	}

	return selected
}
