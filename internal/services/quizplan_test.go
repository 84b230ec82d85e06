package services

import (
	"testing"

	"github.com/google/uuid"

	"slidedeck-backend/internal/models"
)

func makeSlides(n int) []*models.Slide {
	slides := make([]*models.Slide, n)
	for i := range slides {
		slides[i] = &models.Slide{ID: uuid.New(), SlideNumber: i + 1}
	}
	return slides
}

func TestPlanQuizSlides_Count(t *testing.T) {
	slides := makeSlides(10)

	selected := PlanQuizSlides(slides, FrequencyCustom, 3, nil)

	// interval = 10/3 = 3, last slide of each block: indices 2, 5, 8
	if len(selected) != 3 {
		t.Fatalf("Expected 3 selections, got %d", len(selected))
	}
	for i, idx := range []int{2, 5, 8} {
		if selected[i] != slides[idx].ID {
			t.Errorf("Selection %d: expected slide at index %d", i, idx)
		}
	}
}

func TestPlanQuizSlides_CountExceedsSlides(t *testing.T) {
	slides := makeSlides(10)

	selected := PlanQuizSlides(slides, FrequencyCustom, 11, nil)

	if len(selected) != 0 {
		t.Errorf("Expected no selections when count exceeds slide count, got %d", len(selected))
	}
}

func TestPlanQuizSlides_AfterEach(t *testing.T) {
	slides := makeSlides(4)

	selected := PlanQuizSlides(slides, FrequencyAfterEach, 0, nil)

	if len(selected) != 4 {
		t.Fatalf("Expected every slide selected, got %d", len(selected))
	}
	for i, s := range slides {
		if selected[i] != s.ID {
			t.Errorf("Selection %d out of order", i)
		}
	}
}

func TestPlanQuizSlides_CustomList(t *testing.T) {
	slides := makeSlides(5)
	unknown := uuid.New()

	selected := PlanQuizSlides(slides, FrequencyCustom, 0, []uuid.UUID{slides[3].ID, unknown, slides[1].ID})

	// Unknown ids are dropped; output follows slide order, not request order.
	if len(selected) != 2 {
		t.Fatalf("Expected 2 selections, got %d", len(selected))
	}
	if selected[0] != slides[1].ID || selected[1] != slides[3].ID {
		t.Errorf("Expected slides 2 and 4 in order, got %v", selected)
	}
}

func TestPlanQuizSlides_CountMatchesSlideCount(t *testing.T) {
	slides := makeSlides(5)

	selected := PlanQuizSlides(slides, FrequencyCustom, 5, nil)

	// interval = 1: every slide is the last of its block
	if len(selected) != 5 {
		t.Errorf("Expected all 5 selected, got %d", len(selected))
	}
}

func TestPlanQuizSlides_NoModeSelectsNothing(t *testing.T) {
	slides := makeSlides(5)

	selected := PlanQuizSlides(slides, FrequencyCustom, 0, nil)

	if len(selected) != 0 {
		t.Errorf("Expected no selections without count or custom list, got %d", len(selected))
	}
}
