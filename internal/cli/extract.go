package cli

import (
	"context"
	"fmt"

	"skillfit/internal/analysis"
	"skillfit/internal/common"
	"skillfit/internal/config"
	"skillfit/internal/types"
	"skillfit/internal/utils"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [resume-file]",
	Short: "Extract plain text from a PDF or DOCX resume",
	Long: `Extract the plain text content from an uploaded resume document.
The command takes one argument: the path to a PDF or DOCX file. The
recovered text is printed in the chosen output format and can be fed
back into the analyze command or inspected directly.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if extractConfig.OutputFormat == "" {
			extractConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(extractConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runExtract,
}

var extractConfig common.CommandConfig

// extractInput carries the raw document bytes plus the name the
// extractor uses to pick a parser.
type extractInput struct {
	filename string
	data     []byte
}

func init() {
	extractCmd.Flags().StringVarP(&extractConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().StringVar(&extractConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = extractCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runExtract(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	service := analysis.NewService(config.Vocabulary(), logger)

	createInput := func(contents []string) (extractInput, error) {
		if len(contents) != 1 {
			return extractInput{}, fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		return extractInput{
			filename: args[0],
			data:     []byte(contents[0]),
		}, nil
	}

	logDetails := func(input extractInput, cfg common.CommandConfig) {
		logger.Info("Starting resume text extraction",
			"filename", input.filename,
			"file_size", utils.FormatFileSize(int64(len(input.data))),
			"output_format", cfg.OutputFormat)
	}

	// Create a wrapper function that runs the extractor
	extractOperation := func(ctx context.Context, input extractInput) (types.ExtractionResult, error) {
		text, err := service.ExtractText(ctx, input.filename, input.data)
		if err != nil {
			return types.ExtractionResult{}, err
		}
		return types.ExtractionResult{
			Filename:      utils.SafeBaseName(input.filename),
			ExtractedText: text,
		}, nil
	}

	err := common.RunEngineCommand(
		cmd.Context(),
		logger,
		extractConfig,
		args,
		createInput,
		extractOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to extract resume text: %w", err)
	}
	logger.Info("Resume text extraction completed successfully")
	return nil
}
