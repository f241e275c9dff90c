package models

// NormalizedAnswer is the minimal correct-answer structure extracted from a
// question's full content. Only the fields matching the question type are
// populated; Error is set instead when the content could not be parsed.
type NormalizedAnswer struct {
	Type             QuestionType `json:"type"`
	CorrectOptionID  string       `json:"correct_option_id,omitempty"`
	CorrectOptionIDs []string     `json:"correct_option_ids,omitempty"`
	BoolAnswer       *bool        `json:"bool_answer,omitempty"`
	CorrectOrder     []string     `json:"correct_order,omitempty"`
	Pairs            []MatchPair  `json:"pairs,omitempty"`
	CompliantIDs     []string     `json:"compliant_ids,omitempty"`
	GapAnswers       []string     `json:"gap_answers,omitempty"`
	RegionIDs        []string     `json:"region_ids,omitempty"`
	Text             string       `json:"text,omitempty"`
	ManualGrading    bool         `json:"manual_grading,omitempty"`
	Error            string       `json:"error,omitempty"`
}

func (a NormalizedAnswer) Failed() bool {
	return a.Error != ""
}

// AnswerKeyEntry is one line of the answer key. Index is 1-based and follows
// render order, not payload order. Question keeps the original projection so
// renderers can resolve positional labels from its content.
type AnswerKeyEntry struct {
	Index      int                `json:"index"`
	QuestionID string             `json:"question_id"`
	Type       QuestionType       `json:"type"`
	Question   *QuestionExportDto `json:"-"`
	Answer     NormalizedAnswer   `json:"answer"`
}
