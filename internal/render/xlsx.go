package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/quizforge/quiz-export/internal/answerkey"
	"github.com/quizforge/quiz-export/internal/models"
	"github.com/quizforge/quiz-export/internal/utils"
)

const (
	quizSheetName     = "Quizzes"
	questionSheetName = "Questions"

	// Type-specific columns are bounded; options/gaps past this count are
	// dropped from their columns but survive in the raw content column.
	maxTypeColumns = 5
)

// XLSXRenderer flattens the payload into two sheets: one row per quiz and
// one row per question. The last question column always carries the original
// content JSON verbatim, so a truncated row can still be re-imported.
type XLSXRenderer struct {
	keyBuilder *answerkey.Builder
	logger     utils.Logger
}

func NewXLSXRenderer(logger utils.Logger) *XLSXRenderer {
	return &XLSXRenderer{
		keyBuilder: answerkey.NewBuilder(logger),
		logger:     logger,
	}
}

func (r *XLSXRenderer) Format() models.ExportFormat { return models.FormatXLSX }
func (r *XLSXRenderer) FileExt() string             { return "xlsx" }

func (r *XLSXRenderer) MimeType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (r *XLSXRenderer) Render(payload models.ExportPayload) (*models.ExportFile, error) {
	payload = payload.Normalized()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", quizSheetName); err != nil {
		return nil, fmt.Errorf("failed to create quiz sheet: %w", err)
	}
	if _, err := f.NewSheet(questionSheetName); err != nil {
		return nil, fmt.Errorf("failed to create question sheet: %w", err)
	}

	if err := r.writeQuizSheet(f, payload); err != nil {
		return nil, err
	}
	if err := r.writeQuestionSheet(f, payload); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return models.NewExportFile(payload.FilenamePrefix, r.FileExt(), r.MimeType(), buf.Bytes()), nil
}

func (r *XLSXRenderer) writeQuizSheet(f *excelize.File, payload models.ExportPayload) error {
	headers := []string{
		"Title", "Description", "Category", "Difficulty",
		"Estimated Time (min)", "Tags", "Question Count",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(quizSheetName, cell, header); err != nil {
			return fmt.Errorf("failed to write quiz header: %w", err)
		}
	}

	for rowIndex := range payload.Quizzes {
		quiz := &payload.Quizzes[rowIndex]
		row := []interface{}{
			quiz.Title,
			quiz.Description,
			quiz.Category,
			quiz.Difficulty,
			quiz.EstimatedTime,
			strings.Join(quiz.Tags, ", "),
			len(quiz.Questions),
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			if err := f.SetCellValue(quizSheetName, cell, value); err != nil {
				return fmt.Errorf("failed to write quiz row: %w", err)
			}
		}
	}

	// Cosmetic only.
	_ = f.SetColWidth(quizSheetName, "A", "B", 36)
	_ = f.SetColWidth(quizSheetName, "C", "G", 18)
	return nil
}

func (r *XLSXRenderer) writeQuestionSheet(f *excelize.File, payload models.ExportPayload) error {
	headers := []string{
		"Quiz Title", "#", "Question ID", "Type", "Question Text",
		"Hint", "Explanation", "Correct Answer",
	}
	for i := 1; i <= maxTypeColumns; i++ {
		headers = append(headers, fmt.Sprintf("Option/Gap %d", i))
	}
	headers = append(headers, "Raw Content")

	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(questionSheetName, cell, header); err != nil {
			return fmt.Errorf("failed to write question header: %w", err)
		}
	}

	rowNum := 1
	for qi := range payload.Quizzes {
		quiz := &payload.Quizzes[qi]
		questions := make([]*models.QuestionExportDto, 0, len(quiz.Questions))
		for i := range quiz.Questions {
			questions = append(questions, &quiz.Questions[i])
		}
		entries := r.keyBuilder.Build(questions)

		for i, q := range questions {
			rowNum++
			row := r.questionRow(quiz, q, entries[i])
			for colIndex, value := range row {
				cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowNum)
				if err := f.SetCellValue(questionSheetName, cell, value); err != nil {
					return fmt.Errorf("failed to write question row: %w", err)
				}
			}
		}
	}

	_ = f.SetColWidth(questionSheetName, "A", "A", 24)
	_ = f.SetColWidth(questionSheetName, "E", "E", 48)
	_ = f.SetColWidth(questionSheetName, "N", "N", 60)
	return nil
}

// questionRow builds one fixed-width row: common fields, the formatted
// correct answer, up to maxTypeColumns type-specific values, then the raw
// content JSON exactly as received.
func (r *XLSXRenderer) questionRow(quiz *models.QuizExportDto, q *models.QuestionExportDto, entry models.AnswerKeyEntry) []string {
	row := make([]string, 8+maxTypeColumns+1)

	row[0] = quiz.Title
	row[1] = fmt.Sprintf("%d", entry.Index)
	row[2] = q.ID
	row[3] = string(q.Type)
	row[4] = q.Text
	if q.Hint != nil {
		row[5] = *q.Hint
	}
	if q.Explanation != nil {
		row[6] = *q.Explanation
	}
	row[7] = strings.Join(answerLines(entry), "; ")

	for i, value := range r.typeColumns(q) {
		if i >= maxTypeColumns {
			break
		}
		row[8+i] = value
	}

	row[8+maxTypeColumns] = string(q.Content)
	return row
}

// typeColumns extracts the option-like values of a question. Types without
// enumerable options (true/false, matching, open ended) contribute nothing;
// their full structure is still in the raw content column.
func (r *XLSXRenderer) typeColumns(q *models.QuestionExportDto) []string {
	switch q.Type {
	case models.SingleChoice, models.MultiChoice:
		var content models.ChoiceContent
		if err := json.Unmarshal(q.Content, &content); err != nil {
			return nil
		}
		values := make([]string, 0, len(content.Options))
		for _, option := range content.Options {
			values = append(values, option.Text)
		}
		return values

	case models.FillGap:
		var content models.GapContent
		if err := json.Unmarshal(q.Content, &content); err != nil {
			return nil
		}
		values := make([]string, 0, len(content.Gaps))
		for _, gap := range content.Gaps {
			values = append(values, gap.Answer)
		}
		return values

	case models.Ordering:
		var content models.OrderingContent
		if err := json.Unmarshal(q.Content, &content); err != nil {
			return nil
		}
		values := make([]string, 0, len(content.Items))
		for _, item := range content.Items {
			values = append(values, item.Text)
		}
		return values

	case models.Hotspot:
		var content models.HotspotContent
		if err := json.Unmarshal(q.Content, &content); err != nil {
			return nil
		}
		values := make([]string, 0, len(content.Regions))
		for _, region := range content.Regions {
			values = append(values, region.Label)
		}
		return values

	case models.Compliance:
		var content models.ComplianceContent
		if err := json.Unmarshal(q.Content, &content); err != nil {
			return nil
		}
		values := make([]string, 0, len(content.Statements))
		for _, statement := range content.Statements {
			values = append(values, statement.Text)
		}
		return values

	default:
		return nil
	}
}
