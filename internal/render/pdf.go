package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quizforge/quiz-export/internal/answerkey"
	"github.com/quizforge/quiz-export/internal/models"
	"github.com/quizforge/quiz-export/internal/utils"
)

// Font sizes in points and layout constants in millimeters.
const (
	pdfTitleSize   = 18.0
	pdfHeaderSize  = 14.0
	pdfSectionSize = 12.0
	pdfBodySize    = 11.0
	pdfNoteSize    = 9.0
	pdfKeySize     = 10.0

	pdfIndent      = 6.0
	pdfBlockGap    = 2.0
	pdfQuestionGap = 4.0
	pdfSectionGap  = 8.0
)

const pdfBlank = "__________"

// Core fonts are cp1252 only; the arrow used by ordering/matching answer
// lines has to be spelled out.
var pdfArrows = strings.NewReplacer("→", "->")

// PDFRenderer streams content onto fixed-size pages through a pageWriter.
// Every question's height is estimated up front and reserved in one
// ensureSpace call, so a question that fits a single page is never split.
type PDFRenderer struct {
	keyBuilder *answerkey.Builder
	logger     utils.Logger
}

func NewPDFRenderer(logger utils.Logger) *PDFRenderer {
	return &PDFRenderer{
		keyBuilder: answerkey.NewBuilder(logger),
		logger:     logger,
	}
}

func (r *PDFRenderer) Format() models.ExportFormat { return models.FormatPDF }
func (r *PDFRenderer) MimeType() string            { return "application/pdf" }
func (r *PDFRenderer) FileExt() string             { return "pdf" }

func (r *PDFRenderer) Render(payload models.ExportPayload) (*models.ExportFile, error) {
	payload = payload.Normalized()
	opts := payload.Options
	w := newPageWriter()

	if opts.IncludeCover {
		r.writeCover(w, payload)
	}

	var rendered []*models.QuestionExportDto
	number := 0
	for i := range payload.Quizzes {
		quiz := &payload.Quizzes[i]
		r.writeQuizHeader(w, quiz, opts)
		rendered = append(rendered, r.writeQuizBody(w, quiz, opts, &number)...)
	}

	r.writeAnswerKey(w, payload, rendered)

	data, err := w.output()
	if err != nil {
		return nil, fmt.Errorf("failed to render PDF export: %w", err)
	}
	return models.NewExportFile(payload.FilenamePrefix, r.FileExt(), r.MimeType(), data), nil
}

func (r *PDFRenderer) writeCover(w *pageWriter, payload models.ExportPayload) {
	w.newPage()
	w.spacer(60)
	w.writeLine("Quiz Export", "B", pdfTitleSize)
	w.spacer(pdfSectionGap)
	for i := range payload.Quizzes {
		w.writeWrappedText(payload.Quizzes[i].Title, "B", pdfHeaderSize, 0)
	}
	w.spacer(pdfSectionGap)
	w.writeLine("Version "+payload.VersionCode, "I", pdfNoteSize)
	w.newPage()
}

func (r *PDFRenderer) writeQuizHeader(w *pageWriter, quiz *models.QuizExportDto, opts *models.PrintOptions) {
	w.ensureSpace(lineHeight(pdfHeaderSize) + 3*lineHeight(pdfBodySize))
	w.writeWrappedText(quiz.Title, "B", pdfHeaderSize, 0)
	if opts.IncludeMetadata {
		if quiz.Description != "" {
			w.writeWrappedText(quiz.Description, "", pdfNoteSize, 0)
		}
		var parts []string
		if quiz.Category != "" {
			parts = append(parts, "Category: "+quiz.Category)
		}
		if quiz.Difficulty != "" {
			parts = append(parts, "Difficulty: "+quiz.Difficulty)
		}
		if quiz.EstimatedTime > 0 {
			parts = append(parts, fmt.Sprintf("Estimated time: %d min", quiz.EstimatedTime))
		}
		if len(quiz.Tags) > 0 {
			parts = append(parts, "Tags: "+strings.Join(quiz.Tags, ", "))
		}
		if len(parts) > 0 {
			w.writeWrappedText(strings.Join(parts, "  |  "), "I", pdfNoteSize, 0)
		}
	}
	w.spacer(pdfBlockGap)
}

// writeQuizBody emits the quiz's questions and returns the flattened order
// they were written in, which feeds the answer key builder.
func (r *PDFRenderer) writeQuizBody(w *pageWriter, quiz *models.QuizExportDto, opts *models.PrintOptions, number *int) []*models.QuestionExportDto {
	if !opts.GroupQuestionsByType {
		order := make([]*models.QuestionExportDto, 0, len(quiz.Questions))
		for i := range quiz.Questions {
			q := &quiz.Questions[i]
			*number++
			r.writeQuestionBlock(w, q, *number, opts)
			order = append(order, q)
		}
		return order
	}

	var order []*models.QuestionExportDto
	for _, group := range groupByType(quiz.Questions) {
		w.newPage()
		w.writeLine(typeLabel(group.Type), "B", pdfSectionSize)
		w.spacer(pdfBlockGap)
		for _, q := range group.Questions {
			*number++
			r.writeQuestionBlock(w, q, *number, opts)
			order = append(order, q)
		}
	}
	return order
}

// writeQuestionBlock reserves the estimated height for the whole question
// before any write call, then renders it. The estimate is clamped to one
// printable page; a question taller than a page must split somewhere.
func (r *PDFRenderer) writeQuestionBlock(w *pageWriter, q *models.QuestionExportDto, number int, opts *models.PrintOptions) {
	required := r.estimateQuestionHeight(w, q, number, opts)
	if required > w.printableHeight() {
		required = w.printableHeight()
	}
	w.ensureSpace(required)
	r.writeQuestion(w, q, number, opts)
}

func (r *PDFRenderer) writeQuestion(w *pageWriter, q *models.QuestionExportDto, number int, opts *models.PrintOptions) {
	w.writeWrappedText(fmt.Sprintf("%d. %s", number, q.Text), "B", pdfBodySize, 0)
	r.writeQuestionContent(w, q)
	if opts.IncludeHints && q.Hint != nil && *q.Hint != "" {
		w.writeWrappedText("Hint: "+*q.Hint, "I", pdfNoteSize, pdfIndent)
	}
	if opts.IncludeExplanations && q.Explanation != nil && *q.Explanation != "" {
		w.writeWrappedText("Explanation: "+*q.Explanation, "I", pdfNoteSize, pdfIndent)
	}
	w.spacer(pdfQuestionGap)
}

func (r *PDFRenderer) writeQuestionContent(w *pageWriter, q *models.QuestionExportDto) {
	switch q.Type {
	case models.SingleChoice, models.MultiChoice:
		var content models.ChoiceContent
		if err := json.Unmarshal(q.Content, &content); err != nil {
			r.warnContent(q, err)
			return
		}
		for i, option := range content.Options {
			w.writeWrappedText(fmt.Sprintf("%s. %s", optionLetter(i), option.Text), "", pdfBodySize, pdfIndent)
		}

	case models.TrueFalse:
		w.writeWrappedText("[  ] True        [  ] False", "", pdfBodySize, pdfIndent)

	case models.FillGap:
		var content models.GapContent
		if err := json.Unmarshal(q.Content, &content); err != nil {
			r.warnContent(q, err)
			return
		}
		w.writeWrappedText(gapPlaceholder.ReplaceAllString(content.Text, pdfBlank), "", pdfBodySize, pdfIndent)

	case models.Ordering:
		var content models.OrderingContent
		if err := json.Unmarshal(q.Content, &content); err != nil {
			r.warnContent(q, err)
			return
		}
		for i, item := range content.Items {
			w.writeWrappedText(fmt.Sprintf("%s. %s", optionLetter(i), item.Text), "", pdfBodySize, pdfIndent)
		}

	case models.Matching:
		var content models.MatchingContent
		if err := json.Unmarshal(q.Content, &content); err != nil {
			r.warnContent(q, err)
			return
		}
		rows := len(content.Left)
		if len(content.Right) > rows {
			rows = len(content.Right)
		}
		for i := 0; i < rows; i++ {
			var left, right string
			if i < len(content.Left) {
				left = fmt.Sprintf("%d. %s", i+1, content.Left[i].Text)
			}
			if i < len(content.Right) {
				right = fmt.Sprintf("%s. %s", optionLetter(i), content.Right[i].Text)
			}
			w.writeTwoColumnWrappedText(left, right, "", pdfBodySize)
		}

	case models.Hotspot:
		var content models.HotspotContent
		if err := json.Unmarshal(q.Content, &content); err != nil {
			r.warnContent(q, err)
			return
		}
		if content.ImageURL != "" {
			w.writeWrappedText("[image] "+content.ImageURL, "I", pdfNoteSize, pdfIndent)
		}
		for i, region := range content.Regions {
			w.writeWrappedText(fmt.Sprintf("%s. %s", optionLetter(i), region.Label), "", pdfBodySize, pdfIndent)
		}

	case models.Compliance:
		var content models.ComplianceContent
		if err := json.Unmarshal(q.Content, &content); err != nil {
			r.warnContent(q, err)
			return
		}
		for i, statement := range content.Statements {
			w.writeWrappedText(fmt.Sprintf("%d. %s", i+1, statement.Text), "", pdfBodySize, pdfIndent)
		}

	case models.OpenEnded:
		for i := 0; i < 3; i++ {
			w.writeLine(strings.Repeat("_", 72), "", pdfBodySize)
		}
	}
}

// estimateQuestionHeight mirrors writeQuestion line for line. Any change to
// the rendering routine has to be reflected here or questions will overflow
// the space reserved for them.
func (r *PDFRenderer) estimateQuestionHeight(w *pageWriter, q *models.QuestionExportDto, number int, opts *models.PrintOptions) float64 {
	bodyH := lineHeight(pdfBodySize)
	noteH := lineHeight(pdfNoteSize)
	fullWidth := w.printableWidth()
	indentWidth := fullWidth - pdfIndent

	height := float64(w.countLines(fmt.Sprintf("%d. %s", number, q.Text), "B", pdfBodySize, fullWidth)) * bodyH
	height += r.estimateContentHeight(w, q, bodyH, noteH, indentWidth)

	if opts.IncludeHints && q.Hint != nil && *q.Hint != "" {
		height += float64(w.countLines("Hint: "+*q.Hint, "I", pdfNoteSize, indentWidth)) * noteH
	}
	if opts.IncludeExplanations && q.Explanation != nil && *q.Explanation != "" {
		height += float64(w.countLines("Explanation: "+*q.Explanation, "I", pdfNoteSize, indentWidth)) * noteH
	}
	return height + pdfQuestionGap
}

func (r *PDFRenderer) estimateContentHeight(w *pageWriter, q *models.QuestionExportDto, bodyH, noteH, indentWidth float64) float64 {
	switch q.Type {
	case models.SingleChoice, models.MultiChoice:
		var content models.ChoiceContent
		if err := json.Unmarshal(q.Content, &content); err != nil {
			return 0
		}
		var height float64
		for i, option := range content.Options {
			height += float64(w.countLines(fmt.Sprintf("%s. %s", optionLetter(i), option.Text), "", pdfBodySize, indentWidth)) * bodyH
		}
		return height

	case models.TrueFalse:
		return bodyH

	case models.FillGap:
		var content models.GapContent
		if err := json.Unmarshal(q.Content, &content); err != nil {
			return 0
		}
		text := gapPlaceholder.ReplaceAllString(content.Text, pdfBlank)
		return float64(w.countLines(text, "", pdfBodySize, indentWidth)) * bodyH

	case models.Ordering:
		var content models.OrderingContent
		if err := json.Unmarshal(q.Content, &content); err != nil {
			return 0
		}
		var height float64
		for i, item := range content.Items {
			height += float64(w.countLines(fmt.Sprintf("%s. %s", optionLetter(i), item.Text), "", pdfBodySize, indentWidth)) * bodyH
		}
		return height

	case models.Matching:
		var content models.MatchingContent
		if err := json.Unmarshal(q.Content, &content); err != nil {
			return 0
		}
		rows := len(content.Left)
		if len(content.Right) > rows {
			rows = len(content.Right)
		}
		var height float64
		for i := 0; i < rows; i++ {
			var left, right string
			if i < len(content.Left) {
				left = fmt.Sprintf("%d. %s", i+1, content.Left[i].Text)
			}
			if i < len(content.Right) {
				right = fmt.Sprintf("%s. %s", optionLetter(i), content.Right[i].Text)
			}
			height += float64(w.twoColumnRows(left, right, "", pdfBodySize)) * bodyH
		}
		return height

	case models.Hotspot:
		var content models.HotspotContent
		if err := json.Unmarshal(q.Content, &content); err != nil {
			return 0
		}
		var height float64
		if content.ImageURL != "" {
			height += float64(w.countLines("[image] "+content.ImageURL, "I", pdfNoteSize, indentWidth)) * noteH
		}
		for i, region := range content.Regions {
			height += float64(w.countLines(fmt.Sprintf("%s. %s", optionLetter(i), region.Label), "", pdfBodySize, indentWidth)) * bodyH
		}
		return height

	case models.Compliance:
		var content models.ComplianceContent
		if err := json.Unmarshal(q.Content, &content); err != nil {
			return 0
		}
		var height float64
		for i, statement := range content.Statements {
			height += float64(w.countLines(fmt.Sprintf("%d. %s", i+1, statement.Text), "", pdfBodySize, indentWidth)) * bodyH
		}
		return height

	case models.OpenEnded:
		return 3 * bodyH

	default:
		return 0
	}
}

func (r *PDFRenderer) writeAnswerKey(w *pageWriter, payload models.ExportPayload, rendered []*models.QuestionExportDto) {
	if payload.Options.AnswersOnSeparatePages {
		w.newPage()
	} else {
		w.spacer(pdfSectionGap)
	}

	keyH := lineHeight(pdfKeySize)
	w.ensureSpace(lineHeight(pdfHeaderSize) + lineHeight(pdfNoteSize) + 2*keyH)
	w.writeLine("Answer Key", "B", pdfHeaderSize)
	w.writeLine("Version "+payload.VersionCode, "I", pdfNoteSize)
	w.spacer(pdfBlockGap)

	for _, entry := range r.keyBuilder.Build(rendered) {
		lines := answerLines(entry)
		for i := range lines {
			lines[i] = pdfArrows.Replace(lines[i])
		}

		required := float64(len(lines)+1) * keyH
		if required > w.printableHeight() {
			required = w.printableHeight()
		}
		w.ensureSpace(required)

		if len(lines) == 1 {
			w.writeWrappedText(fmt.Sprintf("%d. %s", entry.Index, lines[0]), "", pdfKeySize, 0)
			continue
		}
		w.writeLine(fmt.Sprintf("%d. (%s)", entry.Index, typeLabel(entry.Type)), "", pdfKeySize)
		for _, line := range lines {
			w.writeWrappedText(line, "", pdfKeySize, pdfIndent)
		}
	}
}

func (r *PDFRenderer) warnContent(q *models.QuestionExportDto, err error) {
	r.logger.Warn("skipping malformed question content",
		"question_id", q.ID,
		"question_type", q.Type,
		"error", err)
}
