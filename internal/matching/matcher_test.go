package matching

import (
	"slices"
	"testing"
)

func TestMatchSkills(t *testing.T) {
	tests := []struct {
		name            string
		resumeSkills    []string
		jobSkills       []string
		expectedMatched []string
		expectedMissing []string
		expectedExtra   []string
	}{
		{
			name:            "both empty",
			resumeSkills:    []string{},
			jobSkills:       []string{},
			expectedMatched: []string{},
			expectedMissing: []string{},
			expectedExtra:   []string{},
		},
		{
			name:            "empty resume",
			resumeSkills:    []string{},
			jobSkills:       []string{"python", "sql"},
			expectedMatched: []string{},
			expectedMissing: []string{"python", "sql"},
			expectedExtra:   []string{},
		},
		{
			name:            "empty job",
			resumeSkills:    []string{"python", "sql"},
			jobSkills:       []string{},
			expectedMatched: []string{},
			expectedMissing: []string{},
			expectedExtra:   []string{"python", "sql"},
		},
		{
			name:            "partial overlap",
			resumeSkills:    []string{"python", "sql", "docker"},
			jobSkills:       []string{"python", "sql", "aws"},
			expectedMatched: []string{"python", "sql"},
			expectedMissing: []string{"aws"},
			expectedExtra:   []string{"docker"},
		},
		{
			name:            "identical sets",
			resumeSkills:    []string{"go", "python"},
			jobSkills:       []string{"python", "go"},
			expectedMatched: []string{"go", "python"},
			expectedMissing: []string{},
			expectedExtra:   []string{},
		},
		{
			name:            "disjoint sets",
			resumeSkills:    []string{"java"},
			jobSkills:       []string{"rust"},
			expectedMatched: []string{},
			expectedMissing: []string{"rust"},
			expectedExtra:   []string{"java"},
		},
		{
			name:            "unsorted input is sorted in output",
			resumeSkills:    []string{"sql", "aws", "python"},
			jobSkills:       []string{"python", "aws", "sql"},
			expectedMatched: []string{"aws", "python", "sql"},
			expectedMissing: []string{},
			expectedExtra:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchSkills(tt.resumeSkills, tt.jobSkills)

			if !slices.Equal(got.MatchedSkills, tt.expectedMatched) {
				t.Errorf("matched = %v, want %v", got.MatchedSkills, tt.expectedMatched)
			}
			if !slices.Equal(got.MissingSkills, tt.expectedMissing) {
				t.Errorf("missing = %v, want %v", got.MissingSkills, tt.expectedMissing)
			}
			if !slices.Equal(got.ExtraResumeSkills, tt.expectedExtra) {
				t.Errorf("extra = %v, want %v", got.ExtraResumeSkills, tt.expectedExtra)
			}
		})
	}
}

func TestMatchSkillsNeverNil(t *testing.T) {
	got := MatchSkills(nil, nil)
	if got.MatchedSkills == nil || got.MissingSkills == nil || got.ExtraResumeSkills == nil {
		t.Errorf("MatchSkills(nil, nil) produced nil slices: %+v", got)
	}
}
