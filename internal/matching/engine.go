package matching

import (
	"skillfit/internal/types"
)

// Engine scores how well a resume matches a job description. It holds the
// process-wide skill vocabulary and tokenizer, both immutable after
// construction, so one Engine serves concurrent analyses without locking.
// Every operation degrades to defined zero or absent values on empty
// input; none of them return errors.
type Engine struct {
	vocab     *Vocabulary
	tokenizer Tokenizer
}

// NewEngine creates an Engine over the given vocabulary and tokenizer.
func NewEngine(vocab *Vocabulary, tokenizer Tokenizer) *Engine {
	return &Engine{
		vocab:     vocab,
		tokenizer: tokenizer,
	}
}

// Vocabulary returns the vocabulary the engine matches against.
func (e *Engine) Vocabulary() *Vocabulary {
	return e.vocab
}

// BuildResumeProfile assembles the structured view of a resume.
func (e *Engine) BuildResumeProfile(text string) types.ResumeProfile {
	profile := types.ResumeProfile{
		Skills: e.ExtractSkills(text),
	}
	if years, ok := EstimateYears(text); ok {
		profile.YearsOfExperience = &years
	}
	return profile
}

// BuildJobProfile assembles the structured view of a job description.
func (e *Engine) BuildJobProfile(text string) types.JobProfile {
	return types.JobProfile{
		RequiredSkills: e.ExtractSkills(text),
	}
}

// Analyze runs the full matching pipeline over a resume and a job
// description: profile both documents, compare skill sets, score lexical
// similarity and combine the signals into the final result. The text
// similarity is reported at three decimals; the percentage scores at two.
func (e *Engine) Analyze(resumeText, jobText string) *types.AnalysisResult {
	resumeProfile := e.BuildResumeProfile(resumeText)
	jobProfile := e.BuildJobProfile(jobText)

	skillsMatch := MatchSkills(resumeProfile.Skills, jobProfile.RequiredSkills)
	pct := SkillMatchPct(len(skillsMatch.MatchedSkills), len(jobProfile.RequiredSkills))
	sim := TextSimilarity(resumeText, jobText)
	overall := CombineScores(sim, pct)

	return &types.AnalysisResult{
		OverallMatchScore:    overall,
		SkillMatchPercentage: pct,
		TextSimilarityScore:  round3(sim),
		ResumeProfile:        resumeProfile,
		JobProfile:           jobProfile,
		SkillsMatch:          skillsMatch,
		Notes:                BuildNotes(skillsMatch.MissingSkills, overall),
	}
}
