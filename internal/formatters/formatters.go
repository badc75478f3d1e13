package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"skillfit/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "AnalysisResult", &AnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalysisResult", &AnalysisMarkdownFormatter{})
	registry.RegisterFormatter("text", "UploadAnalysisResult", &UploadAnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "UploadAnalysisResult", &UploadAnalysisMarkdownFormatter{})
	registry.RegisterFormatter("text", "ExtractionResult", &ExtractionTextFormatter{})
	registry.RegisterFormatter("markdown", "ExtractionResult", &ExtractionMarkdownFormatter{})
	registry.RegisterFormatter("text", "VocabularyListing", &VocabularyTextFormatter{})
	registry.RegisterFormatter("markdown", "VocabularyListing", &VocabularyMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.AnalysisResult:
		return "AnalysisResult"
	case types.UploadAnalysisResult:
		return "UploadAnalysisResult"
	case types.ExtractionResult:
		return "ExtractionResult"
	case types.VocabularyListing:
		return "VocabularyListing"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// AnalysisTextFormatter handles text formatting for match analysis results
type AnalysisTextFormatter struct{}

func (atf *AnalysisTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalysisResult)
	if !ok {
		return "", fmt.Errorf("expected AnalysisResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== MATCH ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("Overall Match Score: %.2f/100\n", result.OverallMatchScore))
	output.WriteString(fmt.Sprintf("Skill Match: %.2f%%\n", result.SkillMatchPercentage))
	output.WriteString(fmt.Sprintf("Text Similarity: %.3f\n\n", result.TextSimilarityScore))

	output.WriteString("=== RESUME PROFILE ===\n")
	if result.ResumeProfile.YearsOfExperience != nil {
		output.WriteString(fmt.Sprintf("Years of Experience: %d\n", *result.ResumeProfile.YearsOfExperience))
	} else {
		output.WriteString("Years of Experience: not stated\n")
	}
	if len(result.ResumeProfile.Skills) > 0 {
		output.WriteString("Skills:\n")
		for _, skill := range result.ResumeProfile.Skills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
	} else {
		output.WriteString("Skills: none detected\n")
	}
	output.WriteString("\n")

	output.WriteString("=== JOB PROFILE ===\n")
	if len(result.JobProfile.RequiredSkills) > 0 {
		output.WriteString("Required Skills:\n")
		for _, skill := range result.JobProfile.RequiredSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
	} else {
		output.WriteString("Required Skills: none detected\n")
	}
	output.WriteString("\n")

	output.WriteString("=== SKILLS MATCH ===\n")
	if len(result.SkillsMatch.MatchedSkills) > 0 {
		output.WriteString("Matched Skills:\n")
		for _, skill := range result.SkillsMatch.MatchedSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
	}
	if len(result.SkillsMatch.MissingSkills) > 0 {
		output.WriteString("Missing Skills:\n")
		for _, skill := range result.SkillsMatch.MissingSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
	}
	if len(result.SkillsMatch.ExtraResumeSkills) > 0 {
		output.WriteString("Extra Resume Skills:\n")
		for _, skill := range result.SkillsMatch.ExtraResumeSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
	}

	if result.Notes != "" {
		output.WriteString("\n=== NOTES ===\n")
		output.WriteString(result.Notes)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (atf *AnalysisTextFormatter) SupportedType() string {
	return "AnalysisResult"
}

// AnalysisMarkdownFormatter handles markdown formatting for match analysis results
type AnalysisMarkdownFormatter struct{}

func (amf *AnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalysisResult)
	if !ok {
		return "", fmt.Errorf("expected AnalysisResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Match Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Overall Match Score:** %.2f/100\n\n", result.OverallMatchScore))
	output.WriteString(fmt.Sprintf("**Skill Match:** %.2f%%\n\n", result.SkillMatchPercentage))
	output.WriteString(fmt.Sprintf("**Text Similarity:** %.3f\n\n", result.TextSimilarityScore))

	output.WriteString("## Resume Profile\n\n")
	if result.ResumeProfile.YearsOfExperience != nil {
		output.WriteString(fmt.Sprintf("**Years of Experience:** %d\n\n", *result.ResumeProfile.YearsOfExperience))
	} else {
		output.WriteString("**Years of Experience:** not stated\n\n")
	}
	if len(result.ResumeProfile.Skills) > 0 {
		output.WriteString("### Skills\n")
		for _, skill := range result.ResumeProfile.Skills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}

	output.WriteString("## Job Profile\n\n")
	if len(result.JobProfile.RequiredSkills) > 0 {
		output.WriteString("### Required Skills\n")
		for _, skill := range result.JobProfile.RequiredSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}

	output.WriteString("## Skills Match\n\n")
	if len(result.SkillsMatch.MatchedSkills) > 0 {
		output.WriteString("### Matched Skills\n")
		for _, skill := range result.SkillsMatch.MatchedSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}
	if len(result.SkillsMatch.MissingSkills) > 0 {
		output.WriteString("### Missing Skills\n")
		for _, skill := range result.SkillsMatch.MissingSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}
	if len(result.SkillsMatch.ExtraResumeSkills) > 0 {
		output.WriteString("### Extra Resume Skills\n")
		for _, skill := range result.SkillsMatch.ExtraResumeSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}

	if result.Notes != "" {
		output.WriteString("## Notes\n\n")
		output.WriteString(result.Notes)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (amf *AnalysisMarkdownFormatter) SupportedType() string {
	return "AnalysisResult"
}

// UploadAnalysisTextFormatter handles text formatting for upload-and-analyze results
type UploadAnalysisTextFormatter struct{}

func (uatf *UploadAnalysisTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.UploadAnalysisResult)
	if !ok {
		return "", fmt.Errorf("expected UploadAnalysisResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== EXTRACTED RESUME TEXT ===\n\n")
	output.WriteString(result.ExtractedText)
	output.WriteString("\n\n")

	analysis, err := (&AnalysisTextFormatter{}).Format(result.AnalysisResult)
	if err != nil {
		return "", err
	}
	output.WriteString(analysis)

	return output.String(), nil
}

func (uatf *UploadAnalysisTextFormatter) SupportedType() string {
	return "UploadAnalysisResult"
}

// UploadAnalysisMarkdownFormatter handles markdown formatting for upload-and-analyze results
type UploadAnalysisMarkdownFormatter struct{}

func (uamf *UploadAnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.UploadAnalysisResult)
	if !ok {
		return "", fmt.Errorf("expected UploadAnalysisResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Extracted Resume Text\n\n")
	output.WriteString(result.ExtractedText)
	output.WriteString("\n\n")

	analysis, err := (&AnalysisMarkdownFormatter{}).Format(result.AnalysisResult)
	if err != nil {
		return "", err
	}
	output.WriteString(analysis)

	return output.String(), nil
}

func (uamf *UploadAnalysisMarkdownFormatter) SupportedType() string {
	return "UploadAnalysisResult"
}

// ExtractionTextFormatter handles text formatting for extraction results
type ExtractionTextFormatter struct{}

func (etf *ExtractionTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ExtractionResult)
	if !ok {
		return "", fmt.Errorf("expected ExtractionResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== EXTRACTED TEXT ===\n\n")
	if result.Filename != "" {
		output.WriteString(fmt.Sprintf("File: %s\n\n", result.Filename))
	}
	output.WriteString(result.ExtractedText)
	output.WriteString("\n")

	return output.String(), nil
}

func (etf *ExtractionTextFormatter) SupportedType() string {
	return "ExtractionResult"
}

// ExtractionMarkdownFormatter handles markdown formatting for extraction results
type ExtractionMarkdownFormatter struct{}

func (emf *ExtractionMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ExtractionResult)
	if !ok {
		return "", fmt.Errorf("expected ExtractionResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Extracted Text\n\n")
	if result.Filename != "" {
		output.WriteString(fmt.Sprintf("**File:** %s\n\n", result.Filename))
	}
	output.WriteString(result.ExtractedText)
	output.WriteString("\n")

	return output.String(), nil
}

func (emf *ExtractionMarkdownFormatter) SupportedType() string {
	return "ExtractionResult"
}

// VocabularyTextFormatter handles text formatting for vocabulary listings
type VocabularyTextFormatter struct{}

func (vtf *VocabularyTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.VocabularyListing)
	if !ok {
		return "", fmt.Errorf("expected VocabularyListing, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== SKILL VOCABULARY ===\n\n")
	output.WriteString(fmt.Sprintf("Source: %s\n", result.Source))
	output.WriteString(fmt.Sprintf("Count: %d\n\n", result.Count))
	for _, skill := range result.Skills {
		output.WriteString(fmt.Sprintf("- %s\n", skill))
	}

	return output.String(), nil
}

func (vtf *VocabularyTextFormatter) SupportedType() string {
	return "VocabularyListing"
}

// VocabularyMarkdownFormatter handles markdown formatting for vocabulary listings
type VocabularyMarkdownFormatter struct{}

func (vmf *VocabularyMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.VocabularyListing)
	if !ok {
		return "", fmt.Errorf("expected VocabularyListing, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Skill Vocabulary\n\n")
	output.WriteString(fmt.Sprintf("**Source:** %s\n\n", result.Source))
	output.WriteString(fmt.Sprintf("**Count:** %d\n\n", result.Count))
	for _, skill := range result.Skills {
		output.WriteString(fmt.Sprintf("- %s\n", skill))
	}

	return output.String(), nil
}

func (vmf *VocabularyMarkdownFormatter) SupportedType() string {
	return "VocabularyListing"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
