package models

import "gorm.io/datatypes"

type QuestionType string

const (
	SingleChoice QuestionType = "single_choice"
	MultiChoice  QuestionType = "multi_choice"
	TrueFalse    QuestionType = "true_false"
	FillGap      QuestionType = "fill_gap"
	Ordering     QuestionType = "ordering"
	Matching     QuestionType = "matching"
	Hotspot      QuestionType = "hotspot"
	Compliance   QuestionType = "compliance"
	OpenEnded    QuestionType = "open_ended"
)

// QuestionExportDto is a read-only projection of a question. Content is a
// type-specific JSON blob whose shape depends on Type; renderers unmarshal it
// into one of the content structs below.
type QuestionExportDto struct {
	ID          string         `json:"id"`
	Type        QuestionType   `json:"type"`
	Text        string         `json:"text"`
	Hint        *string        `json:"hint,omitempty"`
	Explanation *string        `json:"explanation,omitempty"`
	Content     datatypes.JSON `json:"content"`
}

// ===== PER-TYPE CONTENT SHAPES =====

type ChoiceOption struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// ChoiceContent backs both single_choice and multi_choice questions; the
// question type decides how many Correct flags are honored.
type ChoiceContent struct {
	Options []ChoiceOption `json:"options"`
}

type TrueFalseContent struct {
	CorrectAnswer bool `json:"correct_answer"`
}

type Gap struct {
	ID     string `json:"id"`
	Answer string `json:"answer"`
}

// GapContent carries the question text with gap placeholders ({{1}}, {{2}}, …)
// and the expected fill-in for each gap, in reading order.
type GapContent struct {
	Text string `json:"text"`
	Gaps []Gap  `json:"gaps"`
}

type OrderingItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type OrderingContent struct {
	Items        []OrderingItem `json:"items"`
	CorrectOrder []string       `json:"correct_order"`
}

type MatchItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type MatchPair struct {
	LeftID  string `json:"left_id"`
	RightID string `json:"right_id"`
}

type MatchingContent struct {
	Left         []MatchItem `json:"left"`
	Right        []MatchItem `json:"right"`
	CorrectPairs []MatchPair `json:"correct_pairs"`
}

type HotspotRegion struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Correct bool   `json:"correct"`
}

type HotspotContent struct {
	ImageURL string          `json:"image_url"`
	Regions  []HotspotRegion `json:"regions"`
}

type ComplianceStatement struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Compliant bool   `json:"compliant"`
}

type ComplianceContent struct {
	Statements []ComplianceStatement `json:"statements"`
}

type OpenEndedContent struct {
	ReferenceAnswer string `json:"reference_answer,omitempty"`
}
