package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quiz-export/internal/models"
	"github.com/quizforge/quiz-export/internal/utils"
)

func TestRegistryDispatch(t *testing.T) {
	registry := NewRegistry(utils.NewSilentLogger())

	for _, format := range []models.ExportFormat{models.FormatHTML, models.FormatPDF, models.FormatXLSX} {
		renderer, err := registry.Get(format)
		require.NoError(t, err)
		assert.Equal(t, format, renderer.Format())
		assert.NotEmpty(t, renderer.MimeType())
		assert.NotEmpty(t, renderer.FileExt())
	}
}

func TestRegistryUnsupportedFormat(t *testing.T) {
	registry := NewRegistry(utils.NewSilentLogger())

	_, err := registry.Render(models.ExportFormat("docx"), models.ExportPayload{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	assert.Contains(t, err.Error(), "docx")
}
