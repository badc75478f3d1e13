package matching

import (
	"slices"
	"testing"
)

func newTestEngine() *Engine {
	return NewEngine(NewVocabulary(DefaultSkills), WordTokenizer{})
}

func TestExtractSkills(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "empty text",
			text:     "",
			expected: []string{},
		},
		{
			name:     "multi-word skill via phrase match",
			text:     "strong machine learning and deep learning background",
			expected: []string{"c", "deep learning", "machine learning", "r"},
		},
		{
			name:     "substring containment is not word-boundary aware",
			text:     "terraform",
			expected: []string{"r"},
		},
		{
			name:     "slash skill survives tokenization",
			text:     "pipelines with ci/cd tooling",
			expected: []string{"c", "ci/cd"},
		},
		{
			name:     "case is folded",
			text:     "Python SQL",
			expected: []string{"python", "sql"},
		},
		{
			name:     "no vocabulary hits",
			text:     "alpha beta",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.ExtractSkills(tt.text)
			if !slices.Equal(got, tt.expected) {
				t.Errorf("ExtractSkills(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestExtractSkillsSubsetOfVocabulary(t *testing.T) {
	engine := newTestEngine()
	texts := []string{
		"python sql docker kubernetes leadership",
		"experienced data engineering lead with aws, gcp and azure exposure",
		"plain prose with no technology mentions at all",
	}

	for _, text := range texts {
		for _, skill := range engine.ExtractSkills(text) {
			if !engine.Vocabulary().Contains(skill) {
				t.Errorf("ExtractSkills(%q) produced %q, which is not in the vocabulary", text, skill)
			}
		}
	}
}

func TestExtractSkillsSorted(t *testing.T) {
	engine := newTestEngine()
	got := engine.ExtractSkills("sql python aws docker git")
	if !slices.IsSorted(got) {
		t.Errorf("ExtractSkills output not sorted: %v", got)
	}
}

func TestExtractSkillsCustomVocabulary(t *testing.T) {
	vocab := NewVocabulary([]string{"quantum computing", "fortran"})
	engine := NewEngine(vocab, WordTokenizer{})

	got := engine.ExtractSkills("worked on quantum computing simulations in fortran")
	expected := []string{"fortran", "quantum computing"}
	if !slices.Equal(got, expected) {
		t.Errorf("ExtractSkills = %v, want %v", got, expected)
	}
}

func BenchmarkExtractSkills(b *testing.B) {
	engine := newTestEngine()
	text := "Senior data engineer with 7+ years of python, sql, aws, docker and kubernetes. " +
		"Built machine learning pipelines with scikit-learn and tensorflow, dashboards with matplotlib."

	for b.Loop() {
		engine.ExtractSkills(text)
	}
}
