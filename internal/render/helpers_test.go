package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/quizforge/quiz-export/internal/models"
)

func mustContent(t *testing.T, v interface{}) datatypes.JSON {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return datatypes.JSON(data)
}

func singleChoiceQuestion(t *testing.T, id string, optionTexts []string, correctIndex int) models.QuestionExportDto {
	t.Helper()
	options := make([]models.ChoiceOption, 0, len(optionTexts))
	for i, text := range optionTexts {
		options = append(options, models.ChoiceOption{
			ID:      id + "-o" + string(rune('1'+i)),
			Text:    text,
			Correct: i == correctIndex,
		})
	}
	return models.QuestionExportDto{
		ID:      id,
		Type:    models.SingleChoice,
		Text:    "Pick one",
		Content: mustContent(t, models.ChoiceContent{Options: options}),
	}
}

func matchingQuestion(t *testing.T, id string, pairs int) models.QuestionExportDto {
	t.Helper()
	content := models.MatchingContent{}
	for i := 0; i < pairs; i++ {
		n := string(rune('1' + i))
		content.Left = append(content.Left, models.MatchItem{ID: id + "-l" + n, Text: "left " + n})
		content.Right = append(content.Right, models.MatchItem{ID: id + "-r" + n, Text: "right " + n})
		content.CorrectPairs = append(content.CorrectPairs, models.MatchPair{
			LeftID:  id + "-l" + n,
			RightID: id + "-r" + n,
		})
	}
	return models.QuestionExportDto{
		ID:      id,
		Type:    models.Matching,
		Text:    "Match the pairs",
		Content: mustContent(t, content),
	}
}

func trueFalseQuestion(t *testing.T, id string, answer bool) models.QuestionExportDto {
	t.Helper()
	return models.QuestionExportDto{
		ID:      id,
		Type:    models.TrueFalse,
		Text:    "True or false?",
		Content: mustContent(t, models.TrueFalseContent{CorrectAnswer: answer}),
	}
}
