// Package player holds the playback sequencing state machine. Transitions
// are pure functions over a State value; the HTTP layer queues the reports
// they emit as fire-and-forget progress pings.
package player

import (
	"github.com/google/uuid"

	"slidedeck-backend/internal/models"
	"slidedeck-backend/internal/services"
)

type Phase int

const (
	PhaseSlide Phase = iota
	PhaseQuiz
	PhaseComplete
)

type State struct {
	Slides   []*models.Slide
	Index    int
	Phase    Phase
	Answered map[uuid.UUID]bool
}

// Report describes one advancement past a slide, in the shape the progress
// endpoint expects.
type Report struct {
	SlideNumber int         `json:"slide_number"`
	Completed   bool        `json:"completed"`
	QuizResult  *QuizResult `json:"quiz_result,omitempty"`
}

type QuizResult struct {
	Correct bool   `json:"correct"`
	Answer  string `json:"answer"`
}

func NewState(slides []*models.Slide) State {
	s := State{
		Slides:   slides,
		Answered: make(map[uuid.UUID]bool),
	}
	if len(slides) == 0 {
		s.Phase = PhaseComplete
	}
	return s
}

func (s State) current() *models.Slide {
	return s.Slides[s.Index]
}

// Next advances from the current slide. A configured, unanswered quiz gates
// first; otherwise the deck moves forward and a progress report is emitted.
func Next(s State) (State, *Report) {
	if s.Phase != PhaseSlide {
		return s, nil
	}

	cur := s.current()
	if cur.QuizEnabled && cur.Quiz() != nil && !s.Answered[cur.ID] {
		s.Phase = PhaseQuiz
		return s, nil
	}

	return advance(s, nil)
}

// SubmitAnswer grades the pending quiz locally and advances. Grading never
// blocks progression; a wrong answer still moves forward.
func SubmitAnswer(s State, answer string) (State, *Report) {
	if s.Phase != PhaseQuiz {
		return s, nil
	}

	cur := s.current()
	result := &QuizResult{Answer: answer}
	if quiz := cur.Quiz(); quiz != nil {
		result.Correct = services.CheckAnswer(answer, quiz.CorrectAnswer)
	}
	s.Answered[cur.ID] = true
	s.Phase = PhaseSlide

	return advance(s, result)
}

// Previous steps back one slide. A pending quiz gate is discarded without
// grading; no progress is reported for backward movement.
func Previous(s State) State {
	switch s.Phase {
	case PhaseQuiz:
		s.Phase = PhaseSlide
		if s.Index > 0 {
			s.Index--
		}
	case PhaseComplete:
		if len(s.Slides) > 0 {
			s.Phase = PhaseSlide
			s.Index = len(s.Slides) - 1
		}
	default:
		if s.Index > 0 {
			s.Index--
		}
	}
	return s
}

func advance(s State, quizResult *QuizResult) (State, *Report) {
	cur := s.current()
	last := s.Index == len(s.Slides)-1

	report := &Report{
		SlideNumber: cur.SlideNumber,
		Completed:   last,
		QuizResult:  quizResult,
	}

	if last {
		s.Phase = PhaseComplete
	} else {
		s.Index++
	}
	return s, report
}
