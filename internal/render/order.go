package render

import "github.com/quizforge/quiz-export/internal/models"

// questionGroup is one per-type block of a grouped quiz body.
type questionGroup struct {
	Type      models.QuestionType
	Questions []*models.QuestionExportDto
}

// groupByType splits a quiz's questions into per-type blocks. Blocks appear
// in the order their type first occurs in the quiz; within a block the
// original question order is kept.
func groupByType(questions []models.QuestionExportDto) []questionGroup {
	var groups []questionGroup
	index := make(map[models.QuestionType]int)
	for i := range questions {
		q := &questions[i]
		gi, ok := index[q.Type]
		if !ok {
			gi = len(groups)
			index[q.Type] = gi
			groups = append(groups, questionGroup{Type: q.Type})
		}
		groups[gi].Questions = append(groups[gi].Questions, q)
	}
	return groups
}

// typeLabel is the human-readable section heading for a question type.
func typeLabel(t models.QuestionType) string {
	switch t {
	case models.SingleChoice:
		return "Multiple Choice"
	case models.MultiChoice:
		return "Multiple Choice (select all that apply)"
	case models.TrueFalse:
		return "True / False"
	case models.FillGap:
		return "Fill in the Gaps"
	case models.Ordering:
		return "Ordering"
	case models.Matching:
		return "Matching"
	case models.Hotspot:
		return "Hotspot"
	case models.Compliance:
		return "Compliance"
	case models.OpenEnded:
		return "Open Ended"
	default:
		return string(t)
	}
}
