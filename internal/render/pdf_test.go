package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quiz-export/internal/models"
	"github.com/quizforge/quiz-export/internal/utils"
)

func allTypesQuiz(t *testing.T) models.QuizExportDto {
	t.Helper()
	hint := "a hint"
	explanation := "an explanation"

	ordering := models.QuestionExportDto{
		ID:   "ord",
		Type: models.Ordering,
		Text: "Put the steps in order",
		Content: mustContent(t, models.OrderingContent{
			Items: []models.OrderingItem{
				{ID: "i1", Text: "boil water"},
				{ID: "i2", Text: "add pasta"},
			},
			CorrectOrder: []string{"i1", "i2"},
		}),
	}
	fillGap := models.QuestionExportDto{
		ID:   "gap",
		Type: models.FillGap,
		Text: "Complete the sentence",
		Content: mustContent(t, models.GapContent{
			Text: "Water boils at {{1}} degrees.",
			Gaps: []models.Gap{{ID: "g1", Answer: "100"}},
		}),
	}
	hotspot := models.QuestionExportDto{
		ID:   "hot",
		Type: models.Hotspot,
		Text: "Mark the heart",
		Content: mustContent(t, models.HotspotContent{
			ImageURL: "https://example.com/anatomy.png",
			Regions: []models.HotspotRegion{
				{ID: "r1", Label: "lung"},
				{ID: "r2", Label: "heart", Correct: true},
			},
		}),
	}
	compliance := models.QuestionExportDto{
		ID:   "cmp",
		Type: models.Compliance,
		Text: "Which statements comply?",
		Content: mustContent(t, models.ComplianceContent{
			Statements: []models.ComplianceStatement{
				{ID: "s1", Text: "wear a helmet", Compliant: true},
				{ID: "s2", Text: "skip the briefing"},
			},
		}),
	}
	openEnded := models.QuestionExportDto{
		ID:      "open",
		Type:    models.OpenEnded,
		Text:    "Explain your reasoning",
		Content: mustContent(t, models.OpenEndedContent{}),
	}

	single := singleChoiceQuestion(t, "sc", []string{"red", "green", "blue"}, 2)
	single.Hint = &hint
	single.Explanation = &explanation

	multiContent := models.ChoiceContent{Options: []models.ChoiceOption{
		{ID: "m1", Text: "a", Correct: true},
		{ID: "m2", Text: "b"},
		{ID: "m3", Text: "c", Correct: true},
	}}
	multi := models.QuestionExportDto{
		ID:      "mc",
		Type:    models.MultiChoice,
		Text:    "Pick all that apply",
		Content: mustContent(t, multiContent),
	}

	return models.QuizExportDto{
		Title:         "Everything Quiz",
		Description:   "One of each question type",
		Category:      "mixed",
		Difficulty:    "medium",
		EstimatedTime: 30,
		Tags:          []string{"exam", "print"},
		Questions: []models.QuestionExportDto{
			single,
			multi,
			trueFalseQuestion(t, "tf", true),
			fillGap,
			ordering,
			matchingQuestion(t, "match", 3),
			hotspot,
			compliance,
			openEnded,
		},
	}
}

func TestPDFRendererProducesDocument(t *testing.T) {
	payload := models.ExportPayload{
		Quizzes: []models.QuizExportDto{allTypesQuiz(t)},
		Options: &models.PrintOptions{
			IncludeCover:           true,
			IncludeMetadata:        true,
			IncludeHints:           true,
			IncludeExplanations:    true,
			GroupQuestionsByType:   true,
			AnswersOnSeparatePages: true,
		},
	}

	file, err := NewPDFRenderer(utils.NewSilentLogger()).Render(payload)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(file.Bytes()), "%PDF-"))
	assert.Equal(t, "application/pdf", file.MimeType)
	assert.True(t, strings.HasSuffix(file.Filename, ".pdf"))
	assert.Greater(t, file.Size, int64(0))
}

func TestPDFRendererBadContentDoesNotAbort(t *testing.T) {
	bad := models.QuestionExportDto{
		ID:      "bad",
		Type:    models.Matching,
		Text:    "broken",
		Content: []byte(`]]`),
	}
	payload := models.ExportPayload{
		Quizzes: []models.QuizExportDto{
			{Title: "Broken", Questions: []models.QuestionExportDto{bad, trueFalseQuestion(t, "tf", false)}},
		},
	}

	file, err := NewPDFRenderer(utils.NewSilentLogger()).Render(payload)
	require.NoError(t, err)
	assert.Greater(t, file.Size, int64(0))
}

func TestPageWriterEnsureSpace(t *testing.T) {
	w := newPageWriter()

	// First ensureSpace opens the first page.
	w.ensureSpace(10)
	assert.Equal(t, 1, w.pageCount())

	// Plenty of budget left: no new page.
	w.ensureSpace(50)
	assert.Equal(t, 1, w.pageCount())

	// Move the cursor near the bottom; the next reservation must not fit.
	w.pdf.SetY(pdfPageHeight - pdfMarginBottom - 5)
	w.ensureSpace(20)
	assert.Equal(t, 2, w.pageCount())
}

func TestPageWriterWrappedTextAdvancesCursor(t *testing.T) {
	w := newPageWriter()
	w.newPage()
	start := w.pdf.GetY()

	long := strings.Repeat("pagination engine word wrap ", 20)
	w.writeWrappedText(long, "", pdfBodySize, 0)

	lines := w.countLines(long, "", pdfBodySize, w.printableWidth())
	assert.Greater(t, lines, 1)
	assert.InDelta(t, start+float64(lines)*lineHeight(pdfBodySize), w.pdf.GetY(), 0.01)
}

func TestPageWriterTwoColumnAlignment(t *testing.T) {
	w := newPageWriter()
	w.newPage()
	start := w.pdf.GetY()

	left := strings.Repeat("left column text wraps over several lines ", 5)
	right := "short"
	w.writeTwoColumnWrappedText(left, right, "", pdfBodySize)

	rows := w.twoColumnRows(left, right, "", pdfBodySize)
	assert.Greater(t, rows, 1, "left column should need multiple lines")
	assert.InDelta(t, start+float64(rows)*lineHeight(pdfBodySize), w.pdf.GetY(), 0.01,
		"cursor must advance by the taller column's line count")
}

func TestEstimateMatchesRenderedHeight(t *testing.T) {
	// The reserved estimate must never be smaller than what the question
	// actually consumes, or a block could split across pages.
	opts := &models.PrintOptions{IncludeHints: true, IncludeExplanations: true}
	r := NewPDFRenderer(utils.NewSilentLogger())
	quiz := allTypesQuiz(t)

	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		w := newPageWriter()
		w.newPage()

		estimate := r.estimateQuestionHeight(w, q, i+1, opts)
		start := w.pdf.GetY()
		r.writeQuestion(w, q, i+1, opts)
		consumed := w.pdf.GetY() - start

		require.Equal(t, 1, w.pageCount(), "question %s should fit one page", q.ID)
		assert.LessOrEqual(t, consumed, estimate+0.01, "question %s overflowed its estimate", q.ID)
	}
}

func TestPDFRendererManyQuestionsSpanPages(t *testing.T) {
	quiz := models.QuizExportDto{Title: "Long Quiz"}
	for i := 0; i < 40; i++ {
		quiz.Questions = append(quiz.Questions,
			singleChoiceQuestion(t, "q"+string(rune('a'+i%26)), []string{"alpha", "beta", "gamma", "delta"}, i%4))
	}
	payload := models.ExportPayload{Quizzes: []models.QuizExportDto{quiz}}

	file, err := NewPDFRenderer(utils.NewSilentLogger()).Render(payload)
	require.NoError(t, err)
	assert.Greater(t, file.Size, int64(2000))
}
