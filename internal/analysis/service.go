package analysis

import (
	"context"

	"skillfit/internal/errors"
	"skillfit/internal/ingest"
	"skillfit/internal/matching"
	"skillfit/internal/types"
)

// Service handles match analyses and resume text extraction
type Service struct {
	Engine *matching.Engine // Exported for access from server package
	logger *errors.Logger
}

// NewService creates a new analysis service over the given vocabulary
func NewService(vocab *matching.Vocabulary, logger *errors.Logger) *Service {
	logger.Debug("Initializing analysis service",
		"vocabulary_size", vocab.Len())

	return &Service{
		Engine: matching.NewEngine(vocab, matching.WordTokenizer{}),
		logger: logger,
	}
}

// Analyze scores a resume against a job description
func (s *Service) Analyze(ctx context.Context, resumeText, jobText string) *types.AnalysisResult {
	result := s.Engine.Analyze(resumeText, jobText)

	s.logger.Debug("Analysis completed",
		"overall_match_score", result.OverallMatchScore,
		"skill_match_percentage", result.SkillMatchPercentage,
		"matched_skills", len(result.SkillsMatch.MatchedSkills),
		"missing_skills", len(result.SkillsMatch.MissingSkills))

	return result
}

// ExtractText recovers plain text from an uploaded resume document
func (s *Service) ExtractText(ctx context.Context, filename string, data []byte) (string, error) {
	text, err := ingest.Extract(filename, data)
	if err != nil {
		s.logger.LogError(err, "Resume text extraction failed", "filename", filename)
		return "", err
	}

	s.logger.Debug("Resume text extracted",
		"filename", filename,
		"text_length", len(text))

	return text, nil
}

// ExtractAndAnalyze extracts text from an uploaded resume and scores it
// against the job description. Extraction failure yields a degraded
// result carrying the failure in Notes instead of an error, so callers
// always receive the full response shape.
func (s *Service) ExtractAndAnalyze(ctx context.Context, filename string, data []byte, jobText string) *types.UploadAnalysisResult {
	text, err := s.ExtractText(ctx, filename, data)
	if err != nil {
		s.logger.Warn("Returning empty analysis for failed extraction", "filename", filename)
		return failedExtractionResult(err)
	}

	result := s.Analyze(ctx, text, jobText)
	return &types.UploadAnalysisResult{
		AnalysisResult: *result,
		ExtractedText:  text,
	}
}

// VocabularyListing reports the skill vocabulary the service matches against
func (s *Service) VocabularyListing(source string) *types.VocabularyListing {
	vocab := s.Engine.Vocabulary()
	return &types.VocabularyListing{
		Source: source,
		Count:  vocab.Len(),
		Skills: vocab.Skills(),
	}
}

// failedExtractionResult builds the payload returned when the uploaded
// document cannot be read. Slices are empty but non-nil so the JSON
// shape stays stable for clients.
func failedExtractionResult(err error) *types.UploadAnalysisResult {
	return &types.UploadAnalysisResult{
		AnalysisResult: types.AnalysisResult{
			ResumeProfile: types.ResumeProfile{Skills: []string{}},
			JobProfile:    types.JobProfile{RequiredSkills: []string{}},
			SkillsMatch: types.SkillsMatch{
				MatchedSkills:     []string{},
				MissingSkills:     []string{},
				ExtraResumeSkills: []string{},
			},
			Notes: "Failed to extract resume text: " + errors.UserMessage(err),
		},
	}
}
