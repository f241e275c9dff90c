package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quiz-export/internal/models"
	"github.com/quizforge/quiz-export/internal/utils"
)

func TestHTMLRendererGroupedScenario(t *testing.T) {
	// Two quizzes: one single-choice question (4 options, correct = 2nd) and
	// one matching question (3 pairs), grouped by type, answers on separate
	// pages.
	single := singleChoiceQuestion(t, "q1", []string{"red", "green", "blue", "white"}, 1)
	matching := matchingQuestion(t, "q2", 3)

	payload := models.ExportPayload{
		Quizzes: []models.QuizExportDto{
			{Title: "Quiz One", Questions: []models.QuestionExportDto{single}},
			{Title: "Quiz Two", Questions: []models.QuestionExportDto{matching}},
		},
		Options: &models.PrintOptions{
			GroupQuestionsByType:   true,
			AnswersOnSeparatePages: true,
		},
	}

	file, err := NewHTMLRenderer(utils.NewSilentLogger()).Render(payload)
	require.NoError(t, err)

	out := string(file.Bytes())

	// Type section headings in first-occurrence order.
	singleHeading := strings.Index(out, "<h3>Multiple Choice</h3>")
	matchingHeading := strings.Index(out, "<h3>Matching</h3>")
	require.GreaterOrEqual(t, singleHeading, 0)
	require.GreaterOrEqual(t, matchingHeading, 0)
	assert.Less(t, singleHeading, matchingHeading)

	// Single-choice answer resolves to the positional label B.
	assert.Contains(t, out, `<li value="1">B</li>`)

	// Matching answer renders as three position → letter lines.
	assert.Contains(t, out, `<li value="2">1 → A<br>2 → B<br>3 → C</li>`)

	// A page break precedes the answer key section.
	assert.Contains(t, out, "<div class=\"page-break\"></div>\n<h2>Answer Key</h2>")

	assert.True(t, strings.HasSuffix(file.Filename, ".html"))
	assert.Equal(t, "text/html; charset=utf-8", file.MimeType)
}

func TestHTMLRendererAnswerKeyFollowsRenderOrder(t *testing.T) {
	// Interleaved types; grouping reorders the body, and the key must track
	// the grouped order, not the payload order.
	s1 := singleChoiceQuestion(t, "s1", []string{"a", "b"}, 0) // answer A
	m1 := matchingQuestion(t, "m1", 1)
	s2 := singleChoiceQuestion(t, "s2", []string{"a", "b"}, 1) // answer B

	payload := models.ExportPayload{
		Quizzes: []models.QuizExportDto{
			{Title: "Mixed", Questions: []models.QuestionExportDto{s1, m1, s2}},
		},
		Options: &models.PrintOptions{GroupQuestionsByType: true},
	}

	file, err := NewHTMLRenderer(utils.NewSilentLogger()).Render(payload)
	require.NoError(t, err)
	out := string(file.Bytes())

	// Grouped render order: s1, s2, m1. Entry 2 is s2's answer, entry 3 the
	// matching pair.
	assert.Contains(t, out, `<li value="1">A</li>`)
	assert.Contains(t, out, `<li value="2">B</li>`)
	assert.Contains(t, out, `<li value="3">1 → A</li>`)
}

func TestHTMLRendererSequentialKeepsPayloadOrder(t *testing.T) {
	s1 := singleChoiceQuestion(t, "s1", []string{"a", "b"}, 0)
	m1 := matchingQuestion(t, "m1", 1)
	s2 := singleChoiceQuestion(t, "s2", []string{"a", "b"}, 1)

	payload := models.ExportPayload{
		Quizzes: []models.QuizExportDto{
			{Title: "Mixed", Questions: []models.QuestionExportDto{s1, m1, s2}},
		},
	}

	file, err := NewHTMLRenderer(utils.NewSilentLogger()).Render(payload)
	require.NoError(t, err)
	out := string(file.Bytes())

	assert.Contains(t, out, `<li value="1">A</li>`)
	assert.Contains(t, out, `<li value="2">1 → A</li>`)
	assert.Contains(t, out, `<li value="3">B</li>`)
	assert.NotContains(t, out, "<h3>", "sequential body must not emit type headings")
}

func TestHTMLRendererOptionToggles(t *testing.T) {
	hint := "look closer"
	explanation := "because physics"
	q := singleChoiceQuestion(t, "q1", []string{"a", "b"}, 0)
	q.Hint = &hint
	q.Explanation = &explanation

	quiz := models.QuizExportDto{
		Title:       "Toggles",
		Description: "About toggles",
		Category:    "science",
		Questions:   []models.QuestionExportDto{q},
	}

	minimal, err := NewHTMLRenderer(utils.NewSilentLogger()).Render(models.ExportPayload{
		Quizzes: []models.QuizExportDto{quiz},
	})
	require.NoError(t, err)
	assert.NotContains(t, string(minimal.Bytes()), "look closer")
	assert.NotContains(t, string(minimal.Bytes()), "About toggles")
	assert.NotContains(t, string(minimal.Bytes()), `<div class="cover">`)

	full, err := NewHTMLRenderer(utils.NewSilentLogger()).Render(models.ExportPayload{
		Quizzes: []models.QuizExportDto{quiz},
		Options: &models.PrintOptions{
			IncludeCover:        true,
			IncludeMetadata:     true,
			IncludeHints:        true,
			IncludeExplanations: true,
		},
	})
	require.NoError(t, err)
	out := string(full.Bytes())
	assert.Contains(t, out, "look closer")
	assert.Contains(t, out, "because physics")
	assert.Contains(t, out, "About toggles")
	assert.Contains(t, out, `<div class="cover">`)
}

func TestHTMLRendererEscapesUserText(t *testing.T) {
	q := singleChoiceQuestion(t, "q1", []string{"<script>alert(1)</script>", "safe"}, 1)
	q.Text = "Is <b>bold</b> allowed?"

	payload := models.ExportPayload{
		Quizzes: []models.QuizExportDto{{Title: "XSS <quiz>", Questions: []models.QuestionExportDto{q}}},
	}

	file, err := NewHTMLRenderer(utils.NewSilentLogger()).Render(payload)
	require.NoError(t, err)
	out := string(file.Bytes())

	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "XSS &lt;quiz&gt;")
}

func TestHTMLRendererBadContentDoesNotAbort(t *testing.T) {
	bad := models.QuestionExportDto{
		ID:      "bad",
		Type:    models.Ordering,
		Text:    "broken question",
		Content: []byte(`{"items": 42}`),
	}
	good := singleChoiceQuestion(t, "good", []string{"a", "b"}, 0)

	payload := models.ExportPayload{
		Quizzes: []models.QuizExportDto{{Title: "Mixed", Questions: []models.QuestionExportDto{bad, good}}},
	}

	file, err := NewHTMLRenderer(utils.NewSilentLogger()).Render(payload)
	require.NoError(t, err)
	out := string(file.Bytes())

	assert.Contains(t, out, "broken question")
	assert.Contains(t, out, `<li value="1">N/A</li>`)
	assert.Contains(t, out, `<li value="2">A</li>`)
}
