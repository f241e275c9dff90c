package answerkey

import (
	"github.com/quizforge/quiz-export/internal/models"
	"github.com/quizforge/quiz-export/internal/utils"
)

// AnswerUnavailable marks an answer-key entry whose question content could
// not be normalized.
const AnswerUnavailable = "N/A"

// Builder turns a question sequence into an ordered answer key. The input
// must already be in render order: when questions are grouped by type the
// renderer reorders them, and the key has to follow the order the reader
// sees, not the payload order.
type Builder struct {
	normalizer *Normalizer
	logger     utils.Logger
}

func NewBuilder(logger utils.Logger) *Builder {
	return &Builder{
		normalizer: NewNormalizer(),
		logger:     logger,
	}
}

// Build produces one entry per question with a 1-based monotonic index. A
// question whose content fails to normalize yields an entry carrying the
// AnswerUnavailable marker; the batch is never aborted.
func (b *Builder) Build(questions []*models.QuestionExportDto) []models.AnswerKeyEntry {
	entries := make([]models.AnswerKeyEntry, 0, len(questions))
	for i, question := range questions {
		answer, err := b.normalizer.Normalize(question)
		if err != nil {
			b.logger.Warn("answer normalization failed",
				"question_id", question.ID,
				"question_type", question.Type,
				"error", err)
			answer = models.NormalizedAnswer{
				Type:  question.Type,
				Error: AnswerUnavailable,
			}
		}
		entries = append(entries, models.AnswerKeyEntry{
			Index:      i + 1,
			QuestionID: question.ID,
			Type:       question.Type,
			Question:   question,
			Answer:     answer,
		})
	}
	return entries
}
