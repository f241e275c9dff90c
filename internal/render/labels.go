package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quizforge/quiz-export/internal/models"
)

// positionMap maps content-local ids to their 0-based position in the
// original content. Ids are only unique within one question's content, so a
// map is rebuilt per question and never cached across questions.
type positionMap map[string]int

func positionsOf(ids []string) positionMap {
	pm := make(positionMap, len(ids))
	for i, id := range ids {
		pm[id] = i
	}
	return pm
}

// optionLetter converts a 0-based position to the letter label shown in the
// printed body: A..Z, then AA, AB, …
func optionLetter(i int) string {
	letter := ""
	for i >= 0 {
		letter = string(rune('A'+i%26)) + letter
		i = i/26 - 1
	}
	return letter
}

// letterByID resolves an id to its letter label, falling back to the raw id
// when the content and the normalized answer disagree.
func letterByID(pm positionMap, id string) string {
	if i, ok := pm[id]; ok {
		return optionLetter(i)
	}
	return id
}

// numberByID resolves an id to its 1-based numeric label, falling back to
// the raw id.
func numberByID(pm positionMap, id string) string {
	if i, ok := pm[id]; ok {
		return fmt.Sprintf("%d", i+1)
	}
	return id
}

func choicePositions(raw []byte) positionMap {
	var content models.ChoiceContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return positionMap{}
	}
	ids := make([]string, 0, len(content.Options))
	for _, option := range content.Options {
		ids = append(ids, option.ID)
	}
	return positionsOf(ids)
}

func orderingPositions(raw []byte) positionMap {
	var content models.OrderingContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return positionMap{}
	}
	ids := make([]string, 0, len(content.Items))
	for _, item := range content.Items {
		ids = append(ids, item.ID)
	}
	return positionsOf(ids)
}

func matchingPositions(raw []byte) (left, right positionMap) {
	var content models.MatchingContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return positionMap{}, positionMap{}
	}
	leftIDs := make([]string, 0, len(content.Left))
	for _, item := range content.Left {
		leftIDs = append(leftIDs, item.ID)
	}
	rightIDs := make([]string, 0, len(content.Right))
	for _, item := range content.Right {
		rightIDs = append(rightIDs, item.ID)
	}
	return positionsOf(leftIDs), positionsOf(rightIDs)
}

func hotspotPositions(raw []byte) positionMap {
	var content models.HotspotContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return positionMap{}
	}
	ids := make([]string, 0, len(content.Regions))
	for _, region := range content.Regions {
		ids = append(ids, region.ID)
	}
	return positionsOf(ids)
}

func compliancePositions(raw []byte) positionMap {
	var content models.ComplianceContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return positionMap{}
	}
	ids := make([]string, 0, len(content.Statements))
	for _, statement := range content.Statements {
		ids = append(ids, statement.ID)
	}
	return positionsOf(ids)
}

// answerLines formats one answer-key entry as positional-label text lines.
// The id→position map is rebuilt from the entry's original question content
// on every call, so the labels always match what the body renderer printed
// for that question.
func answerLines(e models.AnswerKeyEntry) []string {
	if e.Answer.Failed() {
		return []string{e.Answer.Error}
	}

	switch e.Type {
	case models.SingleChoice:
		pm := choicePositions(e.Question.Content)
		return []string{letterByID(pm, e.Answer.CorrectOptionID)}

	case models.MultiChoice:
		pm := choicePositions(e.Question.Content)
		letters := make([]string, 0, len(e.Answer.CorrectOptionIDs))
		for _, id := range e.Answer.CorrectOptionIDs {
			letters = append(letters, letterByID(pm, id))
		}
		return []string{strings.Join(letters, ", ")}

	case models.TrueFalse:
		if e.Answer.BoolAnswer == nil {
			return []string{"N/A"}
		}
		if *e.Answer.BoolAnswer {
			return []string{"True"}
		}
		return []string{"False"}

	case models.FillGap:
		lines := make([]string, 0, len(e.Answer.GapAnswers))
		for i, answer := range e.Answer.GapAnswers {
			lines = append(lines, fmt.Sprintf("Gap %d: %s", i+1, answer))
		}
		return lines

	case models.Ordering:
		pm := orderingPositions(e.Question.Content)
		letters := make([]string, 0, len(e.Answer.CorrectOrder))
		for _, id := range e.Answer.CorrectOrder {
			letters = append(letters, letterByID(pm, id))
		}
		return []string{strings.Join(letters, " → ")}

	case models.Matching:
		leftPM, rightPM := matchingPositions(e.Question.Content)
		lines := make([]string, 0, len(e.Answer.Pairs))
		for _, pair := range e.Answer.Pairs {
			lines = append(lines, fmt.Sprintf("%s → %s",
				numberByID(leftPM, pair.LeftID),
				letterByID(rightPM, pair.RightID)))
		}
		return lines

	case models.Hotspot:
		if e.Answer.ManualGrading {
			return []string{"Manual grading"}
		}
		pm := hotspotPositions(e.Question.Content)
		letters := make([]string, 0, len(e.Answer.RegionIDs))
		for _, id := range e.Answer.RegionIDs {
			letters = append(letters, letterByID(pm, id))
		}
		return []string{strings.Join(letters, ", ")}

	case models.Compliance:
		if len(e.Answer.CompliantIDs) == 0 {
			return []string{"None"}
		}
		pm := compliancePositions(e.Question.Content)
		numbers := make([]string, 0, len(e.Answer.CompliantIDs))
		for _, id := range e.Answer.CompliantIDs {
			numbers = append(numbers, numberByID(pm, id))
		}
		return []string{strings.Join(numbers, ", ")}

	case models.OpenEnded:
		if e.Answer.ManualGrading {
			return []string{"Manual grading"}
		}
		return []string{e.Answer.Text}

	default:
		return []string{"N/A"}
	}
}
