package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"skillfit/internal/matching"
)

var (
	loadedVocabulary     *matching.Vocabulary
	loadedVocabularyOnce sync.Once
	vocabularySource     string
)

// Vocabulary returns the skill vocabulary in a thread-safe way. Falls
// back to the built-in skill list when no configuration has loaded one.
func Vocabulary() *matching.Vocabulary {
	loadedVocabularyOnce.Do(func() {
		if loadedVocabulary == nil {
			loadedVocabulary = matching.NewVocabulary(matching.DefaultSkills)
			vocabularySource = "builtin"
		}
	})
	return loadedVocabulary
}

// VocabularySource reports where the active vocabulary came from,
// either "builtin" or the resolved path of the vocabulary file.
func VocabularySource() string {
	Vocabulary()
	return vocabularySource
}

// validateVocabularyFile validates that the vocabulary file exists and is
// readable before loading
func (c *Config) validateVocabularyFile() error {
	if c.Matching.VocabularyFile == "" {
		return nil // No file specified, built-in vocabulary will be used
	}

	absPath, err := filepath.Abs(c.Matching.VocabularyFile)
	if err != nil {
		return fmt.Errorf("invalid path for vocabulary file '%s': %w", c.Matching.VocabularyFile, err)
	}

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return fmt.Errorf("vocabulary file not found: %s", absPath)
	}

	return nil
}

// loadVocabulary loads the custom vocabulary from an external file if a
// file path is specified
func (c *Config) loadVocabulary() error {
	if c.Matching.VocabularyFile == "" {
		loadedVocabulary = matching.NewVocabulary(matching.DefaultSkills)
		vocabularySource = "builtin"
		log.Printf("[CONFIG] Skill vocabulary: built-in (%d skills)", loadedVocabulary.Len())
		return nil
	}

	absPath, err := filepath.Abs(c.Matching.VocabularyFile)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path for vocabulary file '%s': %w", c.Matching.VocabularyFile, err)
	}

	skills, err := parseVocabularyFile(absPath)
	if err != nil {
		return err
	}
	if len(skills) == 0 {
		return fmt.Errorf("vocabulary file '%s' contains no skills", absPath)
	}

	loadedVocabulary = matching.NewVocabulary(skills)
	vocabularySource = absPath

	log.Printf("[CONFIG] Successfully loaded skill vocabulary from file: %s (%d skills)",
		absPath, loadedVocabulary.Len())

	return nil
}

// parseVocabularyFile reads a vocabulary file with one skill per line.
// Blank lines and lines starting with '#' are skipped.
func parseVocabularyFile(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file '%s': %w", path, err)
	}

	var skills []string
	for _, line := range strings.Split(string(content), "\n") {
		skill := strings.TrimSpace(line)
		if skill == "" || strings.HasPrefix(skill, "#") {
			continue
		}
		skills = append(skills, skill)
	}

	return skills, nil
}
