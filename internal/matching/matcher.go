package matching

import (
	"sort"

	"skillfit/internal/types"
)

// MatchSkills computes the set algebra between resume and job skills:
// matched is the intersection, missing is job minus resume, extra is
// resume minus job. All three slices are sorted ascending and never nil.
func MatchSkills(resumeSkills, jobSkills []string) types.SkillsMatch {
	resumeSet := toSet(resumeSkills)
	jobSet := toSet(jobSkills)

	matched := make([]string, 0, len(jobSet))
	missing := make([]string, 0)
	extra := make([]string, 0)

	for s := range jobSet {
		if _, ok := resumeSet[s]; ok {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}
	for s := range resumeSet {
		if _, ok := jobSet[s]; !ok {
			extra = append(extra, s)
		}
	}

	sort.Strings(matched)
	sort.Strings(missing)
	sort.Strings(extra)

	return types.SkillsMatch{
		MatchedSkills:     matched,
		MissingSkills:     missing,
		ExtraResumeSkills: extra,
	}
}

func toSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		set[s] = struct{}{}
	}
	return set
}
