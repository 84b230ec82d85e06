package player

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"slidedeck-backend/internal/models"
)

func quizSlide(number int) *models.Slide {
	return &models.Slide{
		ID:          uuid.New(),
		SlideNumber: number,
		QuizEnabled: true,
		QuizJSON:    json.RawMessage(`{"question":"2+2?","question_type":"short_answer","correct_answer":"4"}`),
	}
}

func plainSlide(number int) *models.Slide {
	return &models.Slide{ID: uuid.New(), SlideNumber: number}
}

func TestNext_NoQuizAdvances(t *testing.T) {
	s := NewState([]*models.Slide{plainSlide(1), plainSlide(2)})

	s, report := Next(s)
	if s.Phase != PhaseSlide || s.Index != 1 {
		t.Fatalf("Expected slide 2, got phase %d index %d", s.Phase, s.Index)
	}
	if report == nil || report.SlideNumber != 1 || report.Completed {
		t.Errorf("Unexpected report: %+v", report)
	}
}

func TestNext_QuizGates(t *testing.T) {
	s := NewState([]*models.Slide{quizSlide(1), plainSlide(2)})

	s, report := Next(s)
	if s.Phase != PhaseQuiz {
		t.Fatalf("Expected quiz gate, got phase %d", s.Phase)
	}
	if report != nil {
		t.Error("Gating on a quiz should not report progress")
	}
	if s.Index != 0 {
		t.Errorf("Quiz gate should stay on the same slide, got index %d", s.Index)
	}
}

func TestSubmitAnswer_GradesAndAdvances(t *testing.T) {
	s := NewState([]*models.Slide{quizSlide(1), plainSlide(2)})
	s, _ = Next(s)

	s, report := SubmitAnswer(s, " 4 ")
	if s.Phase != PhaseSlide || s.Index != 1 {
		t.Fatalf("Expected advance to slide 2, got phase %d index %d", s.Phase, s.Index)
	}
	if report == nil || report.QuizResult == nil {
		t.Fatal("Expected quiz result in report")
	}
	if !report.QuizResult.Correct {
		t.Error("Trimmed correct answer should grade as correct")
	}
}

func TestSubmitAnswer_WrongAnswerStillAdvances(t *testing.T) {
	s := NewState([]*models.Slide{quizSlide(1), plainSlide(2)})
	s, _ = Next(s)

	s, report := SubmitAnswer(s, "5")
	if s.Index != 1 {
		t.Error("Wrong answer must not block navigation")
	}
	if report.QuizResult.Correct {
		t.Error("Wrong answer graded correct")
	}
}

func TestNext_AnsweredQuizDoesNotRegate(t *testing.T) {
	slides := []*models.Slide{quizSlide(1), plainSlide(2)}
	s := NewState(slides)
	s, _ = Next(s)
	s, _ = SubmitAnswer(s, "4")

	// Back to the quiz slide, then forward again: no second gate.
	s = Previous(s)
	if s.Index != 0 {
		t.Fatalf("Expected to be back on slide 1, got index %d", s.Index)
	}
	s, report := Next(s)
	if s.Phase == PhaseQuiz {
		t.Error("Answered quiz should not gate again")
	}
	if report == nil {
		t.Error("Expected a progress report on re-advance")
	}
}

func TestPrevious_ClearsQuizGateWithoutGrading(t *testing.T) {
	s := NewState([]*models.Slide{plainSlide(1), quizSlide(2)})
	s, _ = Next(s)
	s, _ = Next(s) // gates on slide 2's quiz
	if s.Phase != PhaseQuiz {
		t.Fatal("Expected quiz gate on slide 2")
	}

	s = Previous(s)
	if s.Phase != PhaseSlide || s.Index != 0 {
		t.Errorf("Expected slide 1 with gate cleared, got phase %d index %d", s.Phase, s.Index)
	}
	if len(s.Answered) != 0 {
		t.Error("Backing out of a quiz must not grade it")
	}
}

func TestNext_LastSlideCompletes(t *testing.T) {
	s := NewState([]*models.Slide{plainSlide(1)})

	s, report := Next(s)
	if s.Phase != PhaseComplete {
		t.Fatalf("Expected completion, got phase %d", s.Phase)
	}
	if report == nil || !report.Completed {
		t.Errorf("Final report should carry the completion flag: %+v", report)
	}

	// Further Next calls are no-ops.
	s, report = Next(s)
	if report != nil || s.Phase != PhaseComplete {
		t.Error("Next after completion should do nothing")
	}
}

func TestPrevious_FromCompleteReturnsToLastSlide(t *testing.T) {
	s := NewState([]*models.Slide{plainSlide(1), plainSlide(2)})
	s, _ = Next(s)
	s, _ = Next(s)
	if s.Phase != PhaseComplete {
		t.Fatal("Expected completion")
	}

	s = Previous(s)
	if s.Phase != PhaseSlide || s.Index != 1 {
		t.Errorf("Expected return to last slide, got phase %d index %d", s.Phase, s.Index)
	}
}

func TestNewState_EmptyDeckIsComplete(t *testing.T) {
	s := NewState(nil)
	if s.Phase != PhaseComplete {
		t.Error("Empty deck should start complete")
	}
}

func TestGatesIgnoreFlagWithoutPayload(t *testing.T) {
	// quiz_enabled set but no quiz payload stored yet: no gate.
	s := NewState([]*models.Slide{
		{ID: uuid.New(), SlideNumber: 1, QuizEnabled: true},
		plainSlide(2),
	})

	s, report := Next(s)
	if s.Phase == PhaseQuiz {
		t.Error("Slide without quiz payload should not gate")
	}
	if report == nil {
		t.Error("Expected progress report")
	}
}
