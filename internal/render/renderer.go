// Package render converts an export payload into print-ready documents.
// Three renderers are provided: styled HTML, paginated PDF, and an XLSX
// workbook. All renderers build per-call state only and are safe to use from
// concurrent export calls.
package render

import (
	"errors"
	"fmt"

	"github.com/quizforge/quiz-export/internal/models"
	"github.com/quizforge/quiz-export/internal/utils"
)

// ErrUnsupportedFormat is returned when no renderer is registered for the
// requested export format. It is a configuration error and surfaces before
// any rendering begins.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Renderer converts one payload into one output document.
type Renderer interface {
	Format() models.ExportFormat
	MimeType() string
	FileExt() string
	Render(payload models.ExportPayload) (*models.ExportFile, error)
}

// Registry maps export formats to renderers.
type Registry struct {
	renderers map[models.ExportFormat]Renderer
}

// NewRegistry creates a registry with all built-in renderers registered.
func NewRegistry(logger utils.Logger) *Registry {
	r := &Registry{
		renderers: make(map[models.ExportFormat]Renderer),
	}
	r.Register(NewHTMLRenderer(logger))
	r.Register(NewPDFRenderer(logger))
	r.Register(NewXLSXRenderer(logger))
	return r
}

func (r *Registry) Register(renderer Renderer) {
	r.renderers[renderer.Format()] = renderer
}

// Get returns the renderer for a format, or ErrUnsupportedFormat.
func (r *Registry) Get(format models.ExportFormat) (Renderer, error) {
	renderer, ok := r.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return renderer, nil
}

// Render dispatches the payload to the renderer registered for format.
func (r *Registry) Render(format models.ExportFormat, payload models.ExportPayload) (*models.ExportFile, error) {
	renderer, err := r.Get(format)
	if err != nil {
		return nil, err
	}
	return renderer.Render(payload)
}
