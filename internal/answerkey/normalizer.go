// Package answerkey extracts the canonical correct answer from raw question
// content and assembles the ordered answer key for a rendered document.
package answerkey

import (
	"encoding/json"
	"fmt"

	"github.com/quizforge/quiz-export/internal/models"
)

// Normalizer produces the minimal correct-answer representation for each
// question type. It is stateless and safe for concurrent use.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize extracts the correct answer from a question's content blob.
// Malformed content is reported as an error, never a panic; the caller
// decides how to degrade.
func (n *Normalizer) Normalize(q *models.QuestionExportDto) (models.NormalizedAnswer, error) {
	switch q.Type {
	case models.SingleChoice:
		return n.normalizeSingleChoice(q.Content)
	case models.MultiChoice:
		return n.normalizeMultiChoice(q.Content)
	case models.TrueFalse:
		return n.normalizeTrueFalse(q.Content)
	case models.FillGap:
		return n.normalizeFillGap(q.Content)
	case models.Ordering:
		return n.normalizeOrdering(q.Content)
	case models.Matching:
		return n.normalizeMatching(q.Content)
	case models.Hotspot:
		return n.normalizeHotspot(q.Content)
	case models.Compliance:
		return n.normalizeCompliance(q.Content)
	case models.OpenEnded:
		return n.normalizeOpenEnded(q.Content)
	default:
		return models.NormalizedAnswer{}, fmt.Errorf("unsupported question type: %s", q.Type)
	}
}

func (n *Normalizer) normalizeSingleChoice(raw []byte) (models.NormalizedAnswer, error) {
	var content models.ChoiceContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return models.NormalizedAnswer{}, fmt.Errorf("invalid single choice content: %w", err)
	}
	for _, option := range content.Options {
		if option.Correct {
			return models.NormalizedAnswer{
				Type:            models.SingleChoice,
				CorrectOptionID: option.ID,
			}, nil
		}
	}
	return models.NormalizedAnswer{}, fmt.Errorf("no option flagged correct")
}

func (n *Normalizer) normalizeMultiChoice(raw []byte) (models.NormalizedAnswer, error) {
	var content models.ChoiceContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return models.NormalizedAnswer{}, fmt.Errorf("invalid multi choice content: %w", err)
	}
	var correct []string
	for _, option := range content.Options {
		if option.Correct {
			correct = append(correct, option.ID)
		}
	}
	if len(correct) == 0 {
		return models.NormalizedAnswer{}, fmt.Errorf("no option flagged correct")
	}
	return models.NormalizedAnswer{
		Type:             models.MultiChoice,
		CorrectOptionIDs: correct,
	}, nil
}

func (n *Normalizer) normalizeTrueFalse(raw []byte) (models.NormalizedAnswer, error) {
	var content models.TrueFalseContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return models.NormalizedAnswer{}, fmt.Errorf("invalid true/false content: %w", err)
	}
	answer := content.CorrectAnswer
	return models.NormalizedAnswer{
		Type:       models.TrueFalse,
		BoolAnswer: &answer,
	}, nil
}

func (n *Normalizer) normalizeFillGap(raw []byte) (models.NormalizedAnswer, error) {
	var content models.GapContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return models.NormalizedAnswer{}, fmt.Errorf("invalid fill gap content: %w", err)
	}
	if len(content.Gaps) == 0 {
		return models.NormalizedAnswer{}, fmt.Errorf("content has no gaps")
	}
	answers := make([]string, 0, len(content.Gaps))
	for _, gap := range content.Gaps {
		answers = append(answers, gap.Answer)
	}
	return models.NormalizedAnswer{
		Type:       models.FillGap,
		GapAnswers: answers,
	}, nil
}

func (n *Normalizer) normalizeOrdering(raw []byte) (models.NormalizedAnswer, error) {
	var content models.OrderingContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return models.NormalizedAnswer{}, fmt.Errorf("invalid ordering content: %w", err)
	}
	if len(content.CorrectOrder) == 0 {
		return models.NormalizedAnswer{}, fmt.Errorf("content has no correct order")
	}
	return models.NormalizedAnswer{
		Type:         models.Ordering,
		CorrectOrder: content.CorrectOrder,
	}, nil
}

func (n *Normalizer) normalizeMatching(raw []byte) (models.NormalizedAnswer, error) {
	var content models.MatchingContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return models.NormalizedAnswer{}, fmt.Errorf("invalid matching content: %w", err)
	}
	if len(content.CorrectPairs) == 0 {
		return models.NormalizedAnswer{}, fmt.Errorf("content has no correct pairs")
	}
	return models.NormalizedAnswer{
		Type:  models.Matching,
		Pairs: content.CorrectPairs,
	}, nil
}

// normalizeHotspot collects the region IDs flagged correct. A hotspot with no
// flagged region is treated as manually graded rather than malformed, since
// authoring tools allow free-click hotspots.
func (n *Normalizer) normalizeHotspot(raw []byte) (models.NormalizedAnswer, error) {
	var content models.HotspotContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return models.NormalizedAnswer{}, fmt.Errorf("invalid hotspot content: %w", err)
	}
	var correct []string
	for _, region := range content.Regions {
		if region.Correct {
			correct = append(correct, region.ID)
		}
	}
	if len(correct) == 0 {
		return models.NormalizedAnswer{
			Type:          models.Hotspot,
			ManualGrading: true,
		}, nil
	}
	return models.NormalizedAnswer{
		Type:      models.Hotspot,
		RegionIDs: correct,
	}, nil
}

func (n *Normalizer) normalizeCompliance(raw []byte) (models.NormalizedAnswer, error) {
	var content models.ComplianceContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return models.NormalizedAnswer{}, fmt.Errorf("invalid compliance content: %w", err)
	}
	if len(content.Statements) == 0 {
		return models.NormalizedAnswer{}, fmt.Errorf("content has no statements")
	}
	compliant := []string{}
	for _, statement := range content.Statements {
		if statement.Compliant {
			compliant = append(compliant, statement.ID)
		}
	}
	return models.NormalizedAnswer{
		Type:         models.Compliance,
		CompliantIDs: compliant,
	}, nil
}

func (n *Normalizer) normalizeOpenEnded(raw []byte) (models.NormalizedAnswer, error) {
	var content models.OpenEndedContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return models.NormalizedAnswer{}, fmt.Errorf("invalid open ended content: %w", err)
	}
	if content.ReferenceAnswer == "" {
		return models.NormalizedAnswer{
			Type:          models.OpenEnded,
			ManualGrading: true,
		}, nil
	}
	return models.NormalizedAnswer{
		Type: models.OpenEnded,
		Text: content.ReferenceAnswer,
	}, nil
}
