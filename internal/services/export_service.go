package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/quizforge/quiz-export/internal/models"
	"github.com/quizforge/quiz-export/internal/render"
	"github.com/quizforge/quiz-export/internal/utils"
	"github.com/quizforge/quiz-export/internal/validator"
)

// ErrExportValidationFailed wraps struct-tag violations on the export request.
var ErrExportValidationFailed = errors.New("export request validation failed")

// ExportService renders export payloads into downloadable files
type ExportService interface {
	Export(ctx context.Context, format models.ExportFormat, payload models.ExportPayload) (*models.ExportFile, error)
}

type exportService struct {
	registry  *render.Registry
	logger    utils.Logger
	validator *validator.Validator
}

func NewExportService(registry *render.Registry, logger utils.Logger, validator *validator.Validator) ExportService {
	return &exportService{
		registry:  registry,
		logger:    logger,
		validator: validator,
	}
}

// Export validates the request, dispatches to the renderer registered for
// the format, and returns the rendered file. Format and validation errors
// surface before any rendering starts.
func (s *exportService) Export(ctx context.Context, format models.ExportFormat, payload models.ExportPayload) (*models.ExportFile, error) {
	req := models.ExportRequest{Format: format, Payload: payload}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportValidationFailed, err)
	}

	renderer, err := s.registry.Get(format)
	if err != nil {
		return nil, err
	}

	questionCount := 0
	for i := range payload.Quizzes {
		questionCount += len(payload.Quizzes[i].Questions)
	}
	s.logger.InfoContext(ctx, "Starting export",
		"format", format,
		"quiz_count", len(payload.Quizzes),
		"question_count", questionCount,
		"export_id", payload.ExportID)

	file, err := renderer.Render(payload)
	if err != nil {
		s.logger.LogError(err, "Export failed", "format", format, "export_id", payload.ExportID)
		return nil, fmt.Errorf("failed to render %s export: %w", format, err)
	}

	s.logger.InfoContext(ctx, "Export completed",
		"filename", file.Filename,
		"mime_type", file.MimeType,
		"size_bytes", file.Size)

	return file, nil
}
