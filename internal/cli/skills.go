package cli

import (
	"fmt"

	"skillfit/internal/analysis"
	"skillfit/internal/common"
	"skillfit/internal/config"

	"github.com/spf13/cobra"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List the active skill vocabulary",
	Long: `List the skills the matching engine recognizes. The vocabulary is
either the built-in list or the file configured under matching.vocabularyFile,
one skill per line. Every reported skill is matched case-insensitively
against resumes and job descriptions.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if skillsConfig.OutputFormat == "" {
			skillsConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(skillsConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runSkills,
}

var skillsConfig common.CommandConfig

func init() {
	skillsCmd.Flags().StringVarP(&skillsConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	skillsCmd.Flags().StringVar(&skillsConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = skillsCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runSkills(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	service := analysis.NewService(config.Vocabulary(), logger)
	listing := service.VocabularyListing(config.VocabularySource())

	logger.Info("Listing skill vocabulary",
		"source", listing.Source,
		"skills", listing.Count,
		"output_format", skillsConfig.OutputFormat)

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(*listing, skillsConfig); err != nil {
		return fmt.Errorf("failed to list skill vocabulary: %w", err)
	}
	return nil
}
