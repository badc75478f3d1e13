package matching

import (
	"math"
	"strings"
)

// Final score weighting: 60% skill coverage, 40% lexical similarity.
const (
	skillWeight      = 0.6
	similarityWeight = 0.4
)

// Advisory note tiers keyed off the overall score.
const (
	notesLow      = "Overall match is low. You may need to tailor your resume more closely to this role."
	notesModerate = "Decent match. Highlight key relevant projects and skills to strengthen your application."
	notesStrong   = "Strong match. Ensure your achievements are quantified and clearly described."
)

// SkillMatchPct returns the percentage of job skills covered by the
// resume, rounded to two decimals. An empty requirement set yields 0.0,
// not 100: absence of requirements is not rewarded.
func SkillMatchPct(matchedCount, jobSkillCount int) float64 {
	if jobSkillCount == 0 {
		return 0.0
	}
	return round2(100.0 * float64(matchedCount) / float64(jobSkillCount))
}

// CombineScores folds text similarity in [0,1] and the skill match
// percentage in [0,100] into a final score in [0,100], rounded to two
// decimals.
func CombineScores(textSim, skillMatchPct float64) float64 {
	combined := skillWeight*(skillMatchPct/100.0) + similarityWeight*textSim
	return round2(combined * 100.0)
}

// BuildNotes produces the advisory text for one analysis: a missing-skills
// sentence when gaps exist, then exactly one score-tier message. Because a
// tier message is always appended, the result is never empty.
func BuildNotes(missingSkills []string, overallScore float64) string {
	parts := make([]string, 0, 2)
	if len(missingSkills) > 0 {
		parts = append(parts,
			"Consider learning or explicitly mentioning these skills: "+
				strings.Join(missingSkills, ", ")+".")
	}
	switch {
	case overallScore < 50:
		parts = append(parts, notesLow)
	case overallScore < 75:
		parts = append(parts, notesModerate)
	default:
		parts = append(parts, notesStrong)
	}
	return strings.Join(parts, " ")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
