package matching

import (
	"reflect"
	"strings"
	"testing"
)

func TestEngineAnalyze(t *testing.T) {
	engine := newTestEngine()

	resume := "I have 3 years of experience in python and sql"
	job := "Looking for a candidate skilled in python, sql, and aws with 2+ years experience"

	got := engine.Analyze(resume, job)

	// Substring containment also matches the one-letter languages inside
	// longer words ("c" in "experience", "r" in "years"), so they appear
	// on both sides and cancel out in the missing set.
	wantResumeSkills := []string{"c", "python", "r", "sql"}
	if !reflect.DeepEqual(got.ResumeProfile.Skills, wantResumeSkills) {
		t.Errorf("resume skills = %v, want %v", got.ResumeProfile.Skills, wantResumeSkills)
	}
	wantJobSkills := []string{"aws", "c", "python", "r", "sql"}
	if !reflect.DeepEqual(got.JobProfile.RequiredSkills, wantJobSkills) {
		t.Errorf("job skills = %v, want %v", got.JobProfile.RequiredSkills, wantJobSkills)
	}

	if got.ResumeProfile.YearsOfExperience == nil {
		t.Fatal("years of experience not detected")
	}
	if *got.ResumeProfile.YearsOfExperience != 3 {
		t.Errorf("years of experience = %d, want 3", *got.ResumeProfile.YearsOfExperience)
	}

	wantMatched := []string{"c", "python", "r", "sql"}
	if !reflect.DeepEqual(got.SkillsMatch.MatchedSkills, wantMatched) {
		t.Errorf("matched skills = %v, want %v", got.SkillsMatch.MatchedSkills, wantMatched)
	}
	wantMissing := []string{"aws"}
	if !reflect.DeepEqual(got.SkillsMatch.MissingSkills, wantMissing) {
		t.Errorf("missing skills = %v, want %v", got.SkillsMatch.MissingSkills, wantMissing)
	}
	if len(got.SkillsMatch.ExtraResumeSkills) != 0 {
		t.Errorf("extra resume skills = %v, want none", got.SkillsMatch.ExtraResumeSkills)
	}

	if got.SkillMatchPercentage != 80.0 {
		t.Errorf("skill match percentage = %v, want 80.0", got.SkillMatchPercentage)
	}
	if got.TextSimilarityScore != 0.436 {
		t.Errorf("text similarity score = %v, want 0.436", got.TextSimilarityScore)
	}
	if got.OverallMatchScore != 65.43 {
		t.Errorf("overall match score = %v, want 65.43", got.OverallMatchScore)
	}

	if !strings.Contains(got.Notes, "aws") {
		t.Errorf("notes %q should mention the missing skill aws", got.Notes)
	}
	if !strings.Contains(got.Notes, "Decent match.") {
		t.Errorf("notes %q should carry the moderate tier message", got.Notes)
	}
}

func TestEngineAnalyzeNoJobSkills(t *testing.T) {
	engine := newTestEngine()

	got := engine.Analyze("python developer", "we need a talented human")

	if len(got.JobProfile.RequiredSkills) != 0 {
		t.Fatalf("job skills = %v, want none", got.JobProfile.RequiredSkills)
	}
	if got.SkillMatchPercentage != 0.0 {
		t.Errorf("skill match percentage = %v, want 0.0 when the job lists no recognized skills", got.SkillMatchPercentage)
	}
	if len(got.SkillsMatch.MatchedSkills) != 0 || len(got.SkillsMatch.MissingSkills) != 0 {
		t.Errorf("matched = %v, missing = %v, want both empty", got.SkillsMatch.MatchedSkills, got.SkillsMatch.MissingSkills)
	}
	wantExtra := []string{"python", "r"}
	if !reflect.DeepEqual(got.SkillsMatch.ExtraResumeSkills, wantExtra) {
		t.Errorf("extra resume skills = %v, want %v", got.SkillsMatch.ExtraResumeSkills, wantExtra)
	}
	if got.OverallMatchScore != 0.0 {
		t.Errorf("overall match score = %v, want 0.0", got.OverallMatchScore)
	}
	if !strings.Contains(got.Notes, "Overall match is low.") {
		t.Errorf("notes %q should carry the low tier message", got.Notes)
	}
	if strings.Contains(got.Notes, "Consider learning") {
		t.Errorf("notes %q should not suggest skills when none are missing", got.Notes)
	}
}

func TestEngineAnalyzeEmptyInputs(t *testing.T) {
	engine := newTestEngine()

	got := engine.Analyze("", "")

	if got.OverallMatchScore != 0.0 || got.SkillMatchPercentage != 0.0 || got.TextSimilarityScore != 0.0 {
		t.Errorf("scores = %v/%v/%v, want all 0.0",
			got.OverallMatchScore, got.SkillMatchPercentage, got.TextSimilarityScore)
	}
	if got.ResumeProfile.Skills == nil || len(got.ResumeProfile.Skills) != 0 {
		t.Errorf("resume skills = %#v, want empty non-nil slice", got.ResumeProfile.Skills)
	}
	if got.JobProfile.RequiredSkills == nil || len(got.JobProfile.RequiredSkills) != 0 {
		t.Errorf("job skills = %#v, want empty non-nil slice", got.JobProfile.RequiredSkills)
	}
	if got.ResumeProfile.YearsOfExperience != nil {
		t.Errorf("years of experience = %v, want absent", *got.ResumeProfile.YearsOfExperience)
	}
	if got.Notes == "" {
		t.Error("notes should always carry a tier message")
	}
}

func TestEngineBuildResumeProfile(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		name      string
		text      string
		wantYears *int
	}{
		{name: "years present", text: "docker admin with 7 years experience", wantYears: intPtr(7)},
		{name: "years absent", text: "docker admin", wantYears: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := engine.BuildResumeProfile(tt.text)
			switch {
			case tt.wantYears == nil && profile.YearsOfExperience != nil:
				t.Errorf("years = %d, want absent", *profile.YearsOfExperience)
			case tt.wantYears != nil && profile.YearsOfExperience == nil:
				t.Errorf("years absent, want %d", *tt.wantYears)
			case tt.wantYears != nil && *profile.YearsOfExperience != *tt.wantYears:
				t.Errorf("years = %d, want %d", *profile.YearsOfExperience, *tt.wantYears)
			}
		})
	}
}

func intPtr(v int) *int { return &v }

func BenchmarkEngineAnalyze(b *testing.B) {
	engine := newTestEngine()
	resume := "Senior engineer with 8 years of experience in python, go, docker, kubernetes and aws. Built data pipelines with sql and postgresql."
	job := "Looking for a backend engineer skilled in go, docker, kubernetes, aws and terraform with 5+ years experience."

	for b.Loop() {
		engine.Analyze(resume, job)
	}
}
