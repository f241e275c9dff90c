package models

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

type ExportFormat string

const (
	FormatHTML ExportFormat = "html"
	FormatPDF  ExportFormat = "pdf"
	FormatXLSX ExportFormat = "xlsx"
)

// PrintOptions toggles individual rendering behaviors. The zero value is the
// minimal preset: body only, no cover, no metadata, sequential order.
type PrintOptions struct {
	IncludeCover           bool `json:"include_cover"`
	IncludeMetadata        bool `json:"include_metadata"`
	IncludeHints           bool `json:"include_hints"`
	IncludeExplanations    bool `json:"include_explanations"`
	GroupQuestionsByType   bool `json:"group_questions_by_type"`
	AnswersOnSeparatePages bool `json:"answers_on_separate_pages"`
}

// QuizExportDto is a read-only projection of a quiz.
type QuizExportDto struct {
	Title         string              `json:"title"`
	Description   string              `json:"description,omitempty"`
	Category      string              `json:"category,omitempty"`
	Difficulty    string              `json:"difficulty,omitempty"`
	EstimatedTime int                 `json:"estimated_time,omitempty"` // minutes
	Tags          []string            `json:"tags,omitempty"`
	Questions     []QuestionExportDto `json:"questions"`
}

// ExportPayload is the complete input of one export call. Renderers must not
// mutate it; call Normalized first to resolve all defaults.
//
// ShuffleSeed is carried through the contract for deterministic option/item
// reordering but no renderer consumes it yet.
type ExportPayload struct {
	Quizzes        []QuizExportDto `json:"quizzes"`
	Options        *PrintOptions   `json:"options,omitempty"`
	FilenamePrefix string          `json:"filename_prefix,omitempty"`
	ExportID       string          `json:"export_id,omitempty"`
	VersionCode    string          `json:"version_code,omitempty"`
	ShuffleSeed    int64           `json:"shuffle_seed,omitempty"`
}

// Normalized returns a copy of the payload with every defaulting rule
// applied: non-nil quiz list, minimal print options, a generated export ID,
// and version code, shuffle seed, and filename prefix derived from the
// export ID when absent.
func (p ExportPayload) Normalized() ExportPayload {
	if p.Quizzes == nil {
		p.Quizzes = []QuizExportDto{}
	}
	if p.Options == nil {
		p.Options = &PrintOptions{}
	}
	if p.ExportID == "" {
		p.ExportID = uuid.NewString()
	}
	if p.VersionCode == "" {
		p.VersionCode = deriveVersionCode(p.ExportID)
	}
	if p.ShuffleSeed == 0 {
		p.ShuffleSeed = foldSeed(p.ExportID)
	}
	if p.FilenamePrefix == "" {
		p.FilenamePrefix = fmt.Sprintf("quiz-export-%s", strings.ToLower(p.VersionCode))
	}
	return p
}

// deriveVersionCode produces the short human-readable code printed on both
// the question sheets and the answer key, so printed pages can be matched
// back to each other.
func deriveVersionCode(exportID string) string {
	code := strings.ToUpper(strings.ReplaceAll(exportID, "-", ""))
	if len(code) > 8 {
		code = code[:8]
	}
	return code
}

// foldSeed XOR-folds the export ID bytes into a deterministic seed.
func foldSeed(exportID string) int64 {
	var seed uint64
	for i, b := range []byte(exportID) {
		seed ^= uint64(b) << (uint(i%8) * 8)
	}
	return int64(seed)
}

// ExportRequest pairs a payload with the requested output format for
// validation at the service boundary.
type ExportRequest struct {
	Format  ExportFormat  `json:"format" validate:"required,oneof=html pdf xlsx"`
	Payload ExportPayload `json:"payload"`
}

// ExportFile is the result of one render call.
type ExportFile struct {
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`

	data []byte
}

func NewExportFile(prefix, ext, mimeType string, data []byte) *ExportFile {
	return &ExportFile{
		Filename: fmt.Sprintf("%s.%s", prefix, ext),
		MimeType: mimeType,
		Size:     int64(len(data)),
		data:     data,
	}
}

// Open returns a fresh reader over the rendered bytes; it can be called any
// number of times.
func (f *ExportFile) Open() io.ReadCloser {
	return io.NopCloser(bytes.NewReader(f.data))
}

func (f *ExportFile) Bytes() []byte {
	return f.data
}
