package matching

import (
	"sort"
	"strings"
)

// DefaultSkills is the built-in canonical skill list used when no custom
// vocabulary file is configured. Entries must be lowercase.
var DefaultSkills = []string{
	// Programming languages
	"python", "java", "c", "c++", "c#", "javascript",
	"typescript", "go", "rust", "php", "r", "sql",

	// Data / machine learning
	"machine learning", "deep learning", "nlp",
	"data analysis", "data analytics", "data engineering",
	"statistics", "eda", "computer vision",

	// Python libraries
	"pandas", "numpy", "scikit-learn", "tensorflow", "pytorch",
	"matplotlib", "seaborn",

	// Databases
	"mysql", "postgresql", "mongodb", "redis",

	// Cloud / DevOps
	"aws", "azure", "gcp", "docker", "kubernetes",
	"ci/cd", "git", "github",

	// General / soft skills
	"problem solving", "teamwork", "communication",
	"leadership", "api development", "rest api",
}

// Vocabulary is an immutable set of canonical lowercase skill names.
// It is built once at startup and safe for concurrent reads.
type Vocabulary struct {
	set    map[string]struct{}
	sorted []string
}

// NewVocabulary builds a Vocabulary from a skill list. Entries are
// trimmed, lowercased and deduplicated; empty entries are dropped.
func NewVocabulary(skills []string) *Vocabulary {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		set[s] = struct{}{}
	}
	sorted := make([]string, 0, len(set))
	for s := range set {
		sorted = append(sorted, s)
	}
	sort.Strings(sorted)
	return &Vocabulary{set: set, sorted: sorted}
}

// Contains reports whether skill is part of the vocabulary.
func (v *Vocabulary) Contains(skill string) bool {
	_, ok := v.set[skill]
	return ok
}

// Skills returns the vocabulary entries in ascending order. The returned
// slice is a copy and may be modified by the caller.
func (v *Vocabulary) Skills() []string {
	out := make([]string, len(v.sorted))
	copy(out, v.sorted)
	return out
}

// Len returns the number of entries in the vocabulary.
func (v *Vocabulary) Len() int {
	return len(v.sorted)
}
