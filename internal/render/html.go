package render

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/quizforge/quiz-export/internal/answerkey"
	"github.com/quizforge/quiz-export/internal/models"
	"github.com/quizforge/quiz-export/internal/utils"
)

// gapPlaceholder matches the {{n}} markers inside fill-gap question text.
var gapPlaceholder = regexp.MustCompile(`\{\{\d+\}\}`)

const htmlBlank = "__________"

const htmlHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Quiz Export</title>
<style>
body { font-family: Georgia, 'Times New Roman', serif; margin: 2em auto; max-width: 48em; color: #1a1a1a; }
h1 { font-size: 1.8em; border-bottom: 2px solid #1a1a1a; padding-bottom: 0.2em; }
h2 { font-size: 1.4em; margin-top: 1.5em; }
h3 { font-size: 1.1em; color: #444; text-transform: uppercase; letter-spacing: 0.05em; }
.cover { text-align: center; margin: 4em 0; }
.cover .version { color: #666; font-size: 0.9em; }
.meta { color: #555; font-size: 0.9em; margin-bottom: 1em; }
.question { margin: 1.2em 0; }
.question .text { font-weight: bold; }
.options { list-style: none; padding-left: 1.5em; }
.columns { display: flex; gap: 3em; padding-left: 1.5em; }
.columns ol { margin: 0.3em 0; }
.hint, .explanation { font-size: 0.85em; color: #666; font-style: italic; margin-left: 1.5em; }
.answer-key li { margin: 0.4em 0; }
.page-break { page-break-before: always; }
@media print { body { margin: 1em; } }
</style>
</head>
<body>
`

// HTMLRenderer builds a single self-contained HTML document via incremental
// string construction.
type HTMLRenderer struct {
	keyBuilder *answerkey.Builder
	logger     utils.Logger
}

func NewHTMLRenderer(logger utils.Logger) *HTMLRenderer {
	return &HTMLRenderer{
		keyBuilder: answerkey.NewBuilder(logger),
		logger:     logger,
	}
}

func (r *HTMLRenderer) Format() models.ExportFormat { return models.FormatHTML }
func (r *HTMLRenderer) MimeType() string            { return "text/html; charset=utf-8" }
func (r *HTMLRenderer) FileExt() string             { return "html" }

func (r *HTMLRenderer) Render(payload models.ExportPayload) (*models.ExportFile, error) {
	payload = payload.Normalized()
	opts := payload.Options

	var b strings.Builder
	b.WriteString(htmlHead)

	if opts.IncludeCover {
		r.writeCover(&b, payload)
	}

	// rendered accumulates the actual body order across all quizzes; the
	// answer key must be built from it, not from the payload order.
	var rendered []*models.QuestionExportDto
	number := 0
	for i := range payload.Quizzes {
		quiz := &payload.Quizzes[i]
		r.writeQuizHeader(&b, quiz, opts)
		order := r.writeQuizBody(&b, quiz, opts, &number)
		rendered = append(rendered, order...)
	}

	r.writeAnswerKey(&b, payload, rendered)

	b.WriteString("</body>\n</html>\n")
	return models.NewExportFile(payload.FilenamePrefix, r.FileExt(), r.MimeType(), []byte(b.String())), nil
}

func (r *HTMLRenderer) writeCover(b *strings.Builder, payload models.ExportPayload) {
	b.WriteString(`<div class="cover">`)
	b.WriteString("\n<h1>Quiz Export</h1>\n")
	for i := range payload.Quizzes {
		fmt.Fprintf(b, "<h2>%s</h2>\n", html.EscapeString(payload.Quizzes[i].Title))
	}
	fmt.Fprintf(b, `<p class="version">Version %s</p>`+"\n", html.EscapeString(payload.VersionCode))
	b.WriteString("</div>\n")
	b.WriteString(`<div class="page-break"></div>` + "\n")
}

func (r *HTMLRenderer) writeQuizHeader(b *strings.Builder, quiz *models.QuizExportDto, opts *models.PrintOptions) {
	fmt.Fprintf(b, "<h2>%s</h2>\n", html.EscapeString(quiz.Title))
	if !opts.IncludeMetadata {
		return
	}
	b.WriteString(`<div class="meta">`)
	if quiz.Description != "" {
		fmt.Fprintf(b, "<p>%s</p>", html.EscapeString(quiz.Description))
	}
	var parts []string
	if quiz.Category != "" {
		parts = append(parts, "Category: "+html.EscapeString(quiz.Category))
	}
	if quiz.Difficulty != "" {
		parts = append(parts, "Difficulty: "+html.EscapeString(quiz.Difficulty))
	}
	if quiz.EstimatedTime > 0 {
		parts = append(parts, fmt.Sprintf("Estimated time: %d min", quiz.EstimatedTime))
	}
	if len(quiz.Tags) > 0 {
		parts = append(parts, "Tags: "+html.EscapeString(strings.Join(quiz.Tags, ", ")))
	}
	if len(parts) > 0 {
		fmt.Fprintf(b, "<p>%s</p>", strings.Join(parts, " &middot; "))
	}
	b.WriteString("</div>\n")
}

// writeQuizBody emits all questions of one quiz, sequentially or grouped by
// type, and returns the flattened order they were actually written in.
func (r *HTMLRenderer) writeQuizBody(b *strings.Builder, quiz *models.QuizExportDto, opts *models.PrintOptions, number *int) []*models.QuestionExportDto {
	if !opts.GroupQuestionsByType {
		order := make([]*models.QuestionExportDto, 0, len(quiz.Questions))
		for i := range quiz.Questions {
			q := &quiz.Questions[i]
			*number++
			r.writeQuestion(b, q, *number, opts)
			order = append(order, q)
		}
		return order
	}

	var order []*models.QuestionExportDto
	for _, group := range groupByType(quiz.Questions) {
		b.WriteString(`<div class="page-break"></div>` + "\n")
		fmt.Fprintf(b, "<h3>%s</h3>\n", html.EscapeString(typeLabel(group.Type)))
		for _, q := range group.Questions {
			*number++
			r.writeQuestion(b, q, *number, opts)
			order = append(order, q)
		}
	}
	return order
}

func (r *HTMLRenderer) writeQuestion(b *strings.Builder, q *models.QuestionExportDto, number int, opts *models.PrintOptions) {
	b.WriteString(`<div class="question">` + "\n")
	fmt.Fprintf(b, `<p class="text">%d. %s</p>`+"\n", number, html.EscapeString(q.Text))

	r.writeQuestionContent(b, q)

	if opts.IncludeHints && q.Hint != nil && *q.Hint != "" {
		fmt.Fprintf(b, `<p class="hint">Hint: %s</p>`+"\n", html.EscapeString(*q.Hint))
	}
	if opts.IncludeExplanations && q.Explanation != nil && *q.Explanation != "" {
		fmt.Fprintf(b, `<p class="explanation">Explanation: %s</p>`+"\n", html.EscapeString(*q.Explanation))
	}
	b.WriteString("</div>\n")
}

func (r *HTMLRenderer) writeQuestionContent(b *strings.Builder, q *models.QuestionExportDto) {
	switch q.Type {
	case models.SingleChoice, models.MultiChoice:
		var content models.ChoiceContent
		if err := json.Unmarshal(q.Content, &content); err != nil {
			r.warnContent(q, err)
			return
		}
		b.WriteString(`<ul class="options">` + "\n")
		for i, option := range content.Options {
			fmt.Fprintf(b, "<li>%s. %s</li>\n", optionLetter(i), html.EscapeString(option.Text))
		}
		b.WriteString("</ul>\n")

	case models.TrueFalse:
		b.WriteString(`<ul class="options"><li>&#9744; True</li><li>&#9744; False</li></ul>` + "\n")

	case models.FillGap:
		var content models.GapContent
		if err := json.Unmarshal(q.Content, &content); err != nil {
			r.warnContent(q, err)
			return
		}
		text := gapPlaceholder.ReplaceAllString(html.EscapeString(content.Text), htmlBlank)
		fmt.Fprintf(b, "<p>%s</p>\n", text)

	case models.Ordering:
		var content models.OrderingContent
		if err := json.Unmarshal(q.Content, &content); err != nil {
			r.warnContent(q, err)
			return
		}
		b.WriteString(`<ul class="options">` + "\n")
		for i, item := range content.Items {
			fmt.Fprintf(b, "<li>%s. %s</li>\n", optionLetter(i), html.EscapeString(item.Text))
		}
		b.WriteString("</ul>\n")

	case models.Matching:
		var content models.MatchingContent
		if err := json.Unmarshal(q.Content, &content); err != nil {
			r.warnContent(q, err)
			return
		}
		b.WriteString(`<div class="columns">` + "\n<ol>\n")
		for _, item := range content.Left {
			fmt.Fprintf(b, "<li>%s</li>\n", html.EscapeString(item.Text))
		}
		b.WriteString("</ol>\n<ul>\n")
		for i, item := range content.Right {
			fmt.Fprintf(b, "<li>%s. %s</li>\n", optionLetter(i), html.EscapeString(item.Text))
		}
		b.WriteString("</ul>\n</div>\n")

	case models.Hotspot:
		var content models.HotspotContent
		if err := json.Unmarshal(q.Content, &content); err != nil {
			r.warnContent(q, err)
			return
		}
		if content.ImageURL != "" {
			fmt.Fprintf(b, `<p><img src="%s" alt="hotspot image"></p>`+"\n", html.EscapeString(content.ImageURL))
		}
		b.WriteString(`<ul class="options">` + "\n")
		for i, region := range content.Regions {
			fmt.Fprintf(b, "<li>%s. %s</li>\n", optionLetter(i), html.EscapeString(region.Label))
		}
		b.WriteString("</ul>\n")

	case models.Compliance:
		var content models.ComplianceContent
		if err := json.Unmarshal(q.Content, &content); err != nil {
			r.warnContent(q, err)
			return
		}
		b.WriteString("<ol>\n")
		for _, statement := range content.Statements {
			fmt.Fprintf(b, "<li>%s</li>\n", html.EscapeString(statement.Text))
		}
		b.WriteString("</ol>\n")

	case models.OpenEnded:
		fmt.Fprintf(b, "<p>%s<br>%s<br>%s</p>\n", htmlBlank, htmlBlank, htmlBlank)
	}
}

func (r *HTMLRenderer) writeAnswerKey(b *strings.Builder, payload models.ExportPayload, rendered []*models.QuestionExportDto) {
	if payload.Options.AnswersOnSeparatePages {
		b.WriteString(`<div class="page-break"></div>` + "\n")
	}
	fmt.Fprintf(b, "<h2>Answer Key</h2>\n")
	fmt.Fprintf(b, `<p class="version">Version %s</p>`+"\n", html.EscapeString(payload.VersionCode))

	entries := r.keyBuilder.Build(rendered)
	b.WriteString(`<ol class="answer-key">` + "\n")
	for _, entry := range entries {
		lines := answerLines(entry)
		escaped := make([]string, 0, len(lines))
		for _, line := range lines {
			escaped = append(escaped, html.EscapeString(line))
		}
		fmt.Fprintf(b, "<li value=\"%d\">%s</li>\n", entry.Index, strings.Join(escaped, "<br>"))
	}
	b.WriteString("</ol>\n")
}

func (r *HTMLRenderer) warnContent(q *models.QuestionExportDto, err error) {
	r.logger.Warn("skipping malformed question content",
		"question_id", q.ID,
		"question_type", q.Type,
		"error", err)
}
