package cli

import (
	"context"
	"fmt"

	"skillfit/internal/analysis"
	"skillfit/internal/common"
	"skillfit/internal/config"
	"skillfit/internal/ingest"
	"skillfit/internal/types"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze --resume <resume-file> --job <job-file>",
	Short: "Score how well a resume matches a job description",
	Long: `Analyze a resume against a job description and report how well they
match. The resume may be plain text, PDF, or DOCX; the job description
should be plain text.

The analysis includes:
- Overall match score combining skill overlap and text similarity
- Skills found in the resume and required by the job
- Matched, missing, and extra skills
- Estimated years of experience
- Suggestions for improving the match`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var (
	analyzeConfig     common.CommandConfig
	analyzeResumeFile string
	analyzeJobFile    string
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeResumeFile, "resume", "", "Path to the resume file (text, PDF, or DOCX)")
	analyzeCmd.Flags().StringVar(&analyzeJobFile, "job", "", "Path to the job description file")
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	_ = analyzeCmd.MarkFlagRequired("resume")
	_ = analyzeCmd.MarkFlagRequired("job")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	service := analysis.NewService(config.Vocabulary(), logger)
	inputFiles := []string{analyzeResumeFile, analyzeJobFile}

	createInput := func(contents []string) (types.AnalyzeInput, error) {
		if len(contents) != 2 {
			return types.AnalyzeInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		resumeText := contents[0]
		// Binary resume formats go through the extractor first
		if ingest.Supported(analyzeResumeFile) {
			extracted, err := service.ExtractText(cmd.Context(), analyzeResumeFile, []byte(contents[0]))
			if err != nil {
				return types.AnalyzeInput{}, err
			}
			resumeText = extracted
		}
		return types.AnalyzeInput{
			ResumeText:         resumeText,
			JobDescriptionText: contents[1],
		}, nil
	}

	logDetails := func(input types.AnalyzeInput, cfg common.CommandConfig) {
		logger.Info("Starting match analysis",
			"resume_file", analyzeResumeFile,
			"job_file", analyzeJobFile,
			"output_format", cfg.OutputFormat)
	}

	// Create a wrapper function that runs the matching engine
	analyzeOperation := func(ctx context.Context, input types.AnalyzeInput) (types.AnalysisResult, error) {
		return *service.Analyze(ctx, input.ResumeText, input.JobDescriptionText), nil
	}

	err := common.RunEngineCommand(
		cmd.Context(),
		logger,
		analyzeConfig,
		inputFiles,
		createInput,
		analyzeOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze resume match: %w", err)
	}
	logger.Info("Match analysis completed successfully")
	return nil
}
