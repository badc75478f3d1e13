package analysis

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"skillfit/internal/errors"
	"skillfit/internal/ingest"
	"skillfit/internal/matching"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return NewService(matching.NewVocabulary(matching.DefaultSkills), logger)
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("Failed to create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("Failed to write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return buf.Bytes()
}

func TestServiceAnalyze(t *testing.T) {
	svc := newTestService(t)

	got := svc.Analyze(context.Background(), "python and sql developer", "need python, sql and aws")

	if got.OverallMatchScore <= 0 {
		t.Errorf("OverallMatchScore = %v, want > 0", got.OverallMatchScore)
	}
	if got.SkillMatchPercentage <= 0 {
		t.Errorf("SkillMatchPercentage = %v, want > 0", got.SkillMatchPercentage)
	}
	if got.Notes == "" {
		t.Error("Notes should not be empty")
	}
}

func TestServiceExtractTextDocx(t *testing.T) {
	svc := newTestService(t)
	data := buildDocx(t, `<w:document><w:body><w:p>I use python and sql</w:p></w:body></w:document>`)

	text, err := svc.ExtractText(context.Background(), "resume.docx", data)
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if text != "I use python and sql" {
		t.Errorf("ExtractText() = %q, want %q", text, "I use python and sql")
	}
}

func TestServiceExtractTextUnsupported(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ExtractText(context.Background(), "resume.txt", []byte("plain text"))
	if err == nil {
		t.Fatal("ExtractText() expected error for unsupported file type")
	}
}

func TestServiceExtractAndAnalyze(t *testing.T) {
	svc := newTestService(t)
	data := buildDocx(t, `<w:document><w:body><w:p>I use python and sql</w:p></w:body></w:document>`)

	got := svc.ExtractAndAnalyze(context.Background(), "resume.docx", data, "looking for python and sql")

	if got.ExtractedText != "I use python and sql" {
		t.Errorf("ExtractedText = %q, want %q", got.ExtractedText, "I use python and sql")
	}
	if got.OverallMatchScore <= 0 {
		t.Errorf("OverallMatchScore = %v, want > 0", got.OverallMatchScore)
	}
	if len(got.ResumeProfile.Skills) == 0 {
		t.Error("ResumeProfile.Skills should not be empty")
	}
}

func TestServiceExtractAndAnalyzeFailure(t *testing.T) {
	svc := newTestService(t)

	got := svc.ExtractAndAnalyze(context.Background(), "resume.txt", []byte("plain text"), "python job")

	wantNotes := "Failed to extract resume text: " + ingest.UnsupportedFileMessage
	if got.Notes != wantNotes {
		t.Errorf("Notes = %q, want %q", got.Notes, wantNotes)
	}
	if got.OverallMatchScore != 0 || got.SkillMatchPercentage != 0 || got.TextSimilarityScore != 0 {
		t.Errorf("scores should be zero, got %v/%v/%v",
			got.OverallMatchScore, got.SkillMatchPercentage, got.TextSimilarityScore)
	}
	if got.ExtractedText != "" {
		t.Errorf("ExtractedText = %q, want empty", got.ExtractedText)
	}
	if got.ResumeProfile.Skills == nil || got.JobProfile.RequiredSkills == nil {
		t.Error("profiles should carry empty slices, not nil")
	}
	if got.SkillsMatch.MatchedSkills == nil || got.SkillsMatch.MissingSkills == nil || got.SkillsMatch.ExtraResumeSkills == nil {
		t.Error("skills match should carry empty slices, not nil")
	}
	if len(got.ResumeProfile.Skills) != 0 {
		t.Errorf("ResumeProfile.Skills = %v, want empty", got.ResumeProfile.Skills)
	}
}

func TestServiceVocabularyListing(t *testing.T) {
	svc := newTestService(t)

	got := svc.VocabularyListing("builtin")

	if got.Source != "builtin" {
		t.Errorf("Source = %q, want %q", got.Source, "builtin")
	}
	if got.Count != len(matching.DefaultSkills) {
		t.Errorf("Count = %d, want %d", got.Count, len(matching.DefaultSkills))
	}
	if got.Count != len(got.Skills) {
		t.Errorf("Count = %d but %d skills listed", got.Count, len(got.Skills))
	}
}
