package types

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// AnalyzeInput represents the two documents submitted for matching
type AnalyzeInput struct {
	ResumeText         string `json:"resume_text" validate:"required"`
	JobDescriptionText string `json:"job_description_text" validate:"required"`
}

// Validate checks that both documents are present
func (r *AnalyzeInput) Validate() error {
	return validate.Struct(r)
}

// ResumeProfile is the structured view of a resume
type ResumeProfile struct {
	Skills            []string `json:"skills"`
	YearsOfExperience *int     `json:"years_of_experience"`
}

// JobProfile is the structured view of a job description
type JobProfile struct {
	RequiredSkills []string `json:"required_skills"`
}

// SkillsMatch holds the set algebra between resume and job skills.
// Matched is the intersection, Missing is job minus resume,
// Extra is resume minus job. All three are sorted ascending.
type SkillsMatch struct {
	MatchedSkills     []string `json:"matched_skills"`
	MissingSkills     []string `json:"missing_skills"`
	ExtraResumeSkills []string `json:"extra_resume_skills"`
}

// AnalysisResult is the complete output of one analysis
type AnalysisResult struct {
	OverallMatchScore    float64       `json:"overall_match_score"`
	SkillMatchPercentage float64       `json:"skill_match_percentage"`
	TextSimilarityScore  float64       `json:"text_similarity_score"`
	ResumeProfile        ResumeProfile `json:"resume_profile"`
	JobProfile           JobProfile    `json:"job_profile"`
	SkillsMatch          SkillsMatch   `json:"skills_match"`
	Notes                string        `json:"notes,omitempty"`
}

// UploadAnalysisResult is an AnalysisResult plus the text recovered
// from the uploaded document
type UploadAnalysisResult struct {
	AnalysisResult
	ExtractedText string `json:"extracted_text"`
}

// ExtractionResult holds the text recovered from an uploaded document
type ExtractionResult struct {
	Filename      string `json:"filename,omitempty"`
	ExtractedText string `json:"extracted_text"`
}

// VocabularyListing reports the active skill vocabulary
type VocabularyListing struct {
	Source string   `json:"source"`
	Count  int      `json:"count"`
	Skills []string `json:"skills"`
}
