package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/quizforge/quiz-export/internal/config"
	"github.com/quizforge/quiz-export/internal/models"
	"github.com/quizforge/quiz-export/internal/render"
	"github.com/quizforge/quiz-export/internal/services"
	"github.com/quizforge/quiz-export/internal/utils"
	"github.com/quizforge/quiz-export/internal/validator"
)

var (
	renderFormat string
	renderOutDir string
)

var successMark = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("✓")

var renderCmd = &cobra.Command{
	Use:   "render <payload.json>",
	Short: "Render an export payload file into html, pdf, or xlsx",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read payload file: %w", err)
		}
		var payload models.ExportPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("failed to parse payload file: %w", err)
		}

		format := renderFormat
		if format == "" {
			format = cfg.DefaultFormat
		}
		outDir := renderOutDir
		if outDir == "" {
			outDir = cfg.OutputDir
		}

		logger := utils.NewDefaultLogger()
		if cfg.Environment == "development" {
			logger = utils.NewDevelopmentLogger()
		}
		service := services.NewExportService(render.NewRegistry(logger), logger, validator.New())

		file, err := service.Export(cmd.Context(), models.ExportFormat(format), payload)
		if err != nil {
			return err
		}

		path := filepath.Join(outDir, file.Filename)
		if err := os.WriteFile(path, file.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write export file: %w", err)
		}

		fmt.Printf("%s wrote %s (%s, %d bytes)\n", successMark, path, file.MimeType, file.Size)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "", "export format: html, pdf, or xlsx")
	renderCmd.Flags().StringVarP(&renderOutDir, "out", "o", "", "output directory")
	rootCmd.AddCommand(renderCmd)
}
