package models

import "encoding/json"

// Quiz question kinds.
const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionTrueFalse      = "true_false"
	QuestionShortAnswer    = "short_answer"
)

type Quiz struct {
	Question      string    `json:"question"`
	QuestionType  string    `json:"question_type"` // "multiple_choice" | "true_false" | "short_answer"
	Options       []string  `json:"options,omitempty"`
	CorrectAnswer AnswerKey `json:"correct_answer"`
	Explanation   string    `json:"explanation,omitempty"`
}

// AnswerKey is the set of acceptable answers. The stored form is either a
// single string or a list of strings; both decode here and re-encode in the
// original shape.
type AnswerKey []string

func (a *AnswerKey) UnmarshalJSON(b []byte) error {
	var single string
	if err := json.Unmarshal(b, &single); err == nil {
		*a = AnswerKey{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*a = AnswerKey(many)
	return nil
}

func (a AnswerKey) MarshalJSON() ([]byte, error) {
	if len(a) == 1 {
		return json.Marshal(a[0])
	}
	return json.Marshal([]string(a))
}
