package matching

import (
	"slices"
	"testing"
)

func TestNewVocabularyNormalizesEntries(t *testing.T) {
	v := NewVocabulary([]string{" Python ", "SQL", "python", "", "  ", "Go"})

	want := []string{"go", "python", "sql"}
	if got := v.Skills(); !slices.Equal(got, want) {
		t.Errorf("Skills() = %v, want %v", got, want)
	}
	if v.Len() != 3 {
		t.Errorf("Len() = %d, want 3", v.Len())
	}
}

func TestVocabularyContains(t *testing.T) {
	v := NewVocabulary([]string{"python", "machine learning"})

	tests := []struct {
		skill string
		want  bool
	}{
		{skill: "python", want: true},
		{skill: "machine learning", want: true},
		{skill: "Python", want: false},
		{skill: "rust", want: false},
		{skill: "", want: false},
	}

	for _, tt := range tests {
		if got := v.Contains(tt.skill); got != tt.want {
			t.Errorf("Contains(%q) = %v, want %v", tt.skill, got, tt.want)
		}
	}
}

func TestVocabularySkillsReturnsCopy(t *testing.T) {
	v := NewVocabulary([]string{"python", "sql"})

	first := v.Skills()
	first[0] = "mutated"

	if got := v.Skills(); got[0] != "python" {
		t.Errorf("Skills() affected by caller mutation: %v", got)
	}
}

func TestDefaultSkillsAreCanonical(t *testing.T) {
	v := NewVocabulary(DefaultSkills)

	if v.Len() != len(DefaultSkills) {
		t.Errorf("default list has duplicates or empty entries: %d unique of %d", v.Len(), len(DefaultSkills))
	}
	for _, s := range []string{"python", "c++", "ci/cd", "machine learning"} {
		if !v.Contains(s) {
			t.Errorf("expected default vocabulary to contain %q", s)
		}
	}
}
