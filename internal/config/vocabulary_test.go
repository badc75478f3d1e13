package config

import (
	"os"
	"path/filepath"
	"testing"

	"skillfit/internal/matching"
)

func TestLoadVocabularyFromFile(t *testing.T) {
	// Create temporary directory for test files
	tempDir := t.TempDir()

	vocabContent := "# custom skill list\ngo\nkubernetes\n\n  terraform  \n"
	vocabFile := filepath.Join(tempDir, "skills.txt")

	if err := os.WriteFile(vocabFile, []byte(vocabContent), 0600); err != nil {
		t.Fatalf("Failed to create test vocabulary file: %v", err)
	}

	config := &Config{
		Matching: MatchingConfig{
			VocabularyFile: vocabFile,
		},
	}

	if err := config.loadVocabulary(); err != nil {
		t.Fatalf("Failed to load vocabulary from file: %v", err)
	}

	vocab := Vocabulary()
	if vocab.Len() != 3 {
		t.Errorf("Expected 3 skills, got %d", vocab.Len())
	}

	for _, skill := range []string{"go", "kubernetes", "terraform"} {
		if !vocab.Contains(skill) {
			t.Errorf("Expected vocabulary to contain '%s'", skill)
		}
	}

	if vocab.Contains("# custom skill list") {
		t.Error("Expected comment lines to be skipped")
	}

	if VocabularySource() == "builtin" {
		t.Error("Expected vocabulary source to be the file path, got 'builtin'")
	}

	// Verify file path is preserved on the config
	if config.Matching.VocabularyFile != vocabFile {
		t.Error("Expected vocabulary file path to be preserved")
	}
}

func TestLoadVocabularyBuiltin(t *testing.T) {
	config := &Config{}

	if err := config.loadVocabulary(); err != nil {
		t.Fatalf("Failed to load built-in vocabulary: %v", err)
	}

	vocab := Vocabulary()
	if vocab.Len() != len(matching.DefaultSkills) {
		t.Errorf("Expected %d built-in skills, got %d", len(matching.DefaultSkills), vocab.Len())
	}

	if !vocab.Contains("python") {
		t.Error("Expected built-in vocabulary to contain 'python'")
	}

	if VocabularySource() != "builtin" {
		t.Errorf("Expected vocabulary source 'builtin', got '%s'", VocabularySource())
	}
}

func TestLoadVocabularyEmptyFile(t *testing.T) {
	tempDir := t.TempDir()

	// Only comments and blank lines
	vocabFile := filepath.Join(tempDir, "empty.txt")
	if err := os.WriteFile(vocabFile, []byte("# nothing here\n\n   \n"), 0600); err != nil {
		t.Fatalf("Failed to create test vocabulary file: %v", err)
	}

	config := &Config{
		Matching: MatchingConfig{
			VocabularyFile: vocabFile,
		},
	}

	if err := config.loadVocabulary(); err == nil {
		t.Error("Expected error for vocabulary file with no skills")
	}
}

func TestValidateVocabularyFile(t *testing.T) {
	tempDir := t.TempDir()

	validFile := filepath.Join(tempDir, "valid.txt")
	if err := os.WriteFile(validFile, []byte("python\n"), 0600); err != nil {
		t.Fatalf("Failed to create valid test file: %v", err)
	}

	// Test with valid file
	config := &Config{
		Matching: MatchingConfig{
			VocabularyFile: validFile,
		},
	}

	if err := config.validateVocabularyFile(); err != nil {
		t.Errorf("Expected validation to pass for valid file, got error: %v", err)
	}

	// Test with non-existent file
	config.Matching.VocabularyFile = filepath.Join(tempDir, "nonexistent.txt")

	if err := config.validateVocabularyFile(); err == nil {
		t.Error("Expected validation to fail for non-existent file")
	}

	// Test with no file configured
	config.Matching.VocabularyFile = ""

	if err := config.validateVocabularyFile(); err != nil {
		t.Errorf("Expected validation to pass with no file configured, got error: %v", err)
	}
}

func TestParseVocabularyFile(t *testing.T) {
	tempDir := t.TempDir()

	vocabFile := filepath.Join(tempDir, "skills.txt")
	content := "python\n# a comment\n\n  sql  \nmachine learning\n"
	if err := os.WriteFile(vocabFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to create test vocabulary file: %v", err)
	}

	skills, err := parseVocabularyFile(vocabFile)
	if err != nil {
		t.Fatalf("Failed to parse vocabulary file: %v", err)
	}

	want := []string{"python", "sql", "machine learning"}
	if len(skills) != len(want) {
		t.Fatalf("Expected %d skills, got %d: %v", len(want), len(skills), skills)
	}
	for i, skill := range want {
		if skills[i] != skill {
			t.Errorf("Expected skill %d to be '%s', got '%s'", i, skill, skills[i])
		}
	}

	// Non-existent file
	if _, err := parseVocabularyFile(filepath.Join(tempDir, "nonexistent.txt")); err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestVocabularyFileIntegration(t *testing.T) {
	// Create temporary directory and vocabulary file
	tempDir := t.TempDir()

	vocabFile := filepath.Join(tempDir, "skills.txt")
	if err := os.WriteFile(vocabFile, []byte("python\nrust\nzig\n"), 0600); err != nil {
		t.Fatalf("Failed to create vocabulary file: %v", err)
	}

	// Create a minimal config that would load this file
	config := &Config{
		Matching: MatchingConfig{
			VocabularyFile: vocabFile,
		},
		App: AppConfig{
			LogLevel:         "info",
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown"},
			MaxFileSize:      1024 * 1024,
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: "8080",
		},
	}

	// Apply fallbacks (simulating the full config loading process)
	config.applyFallbacks()

	// Validate and load the vocabulary file
	if err := config.validateVocabularyFile(); err != nil {
		t.Fatalf("Vocabulary file validation failed: %v", err)
	}

	if err := config.loadVocabulary(); err != nil {
		t.Fatalf("Failed to load vocabulary: %v", err)
	}

	// Verify the vocabulary drives skill extraction
	engine := matching.NewEngine(Vocabulary(), matching.WordTokenizer{})
	skills := engine.ExtractSkills("Building services in rust and zig")

	want := []string{"rust", "zig"}
	if len(skills) != len(want) {
		t.Fatalf("Expected skills %v, got %v", want, skills)
	}
	for i := range want {
		if skills[i] != want[i] {
			t.Errorf("Expected skill %d to be '%s', got '%s'", i, want[i], skills[i])
		}
	}
}
