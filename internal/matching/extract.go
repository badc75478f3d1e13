package matching

import (
	"sort"
	"strings"
)

// ExtractSkills returns the vocabulary skills present in text, sorted
// ascending. Two matching paths are combined: phrase containment over the
// normalized lowercased text, and exact token equality for single-word
// skills. Phrase containment is plain substring matching, not
// word-boundary aware, so short entries can over-match inside longer
// words (the vocabulary entry "r" matches inside "terraform"). Empty
// input yields an empty set.
func (e *Engine) ExtractSkills(text string) []string {
	if text == "" {
		return []string{}
	}

	norm := strings.ToLower(Normalize(text))
	found := make(map[string]struct{})

	// Phrase containment catches multi-word skills and embedded mentions.
	for _, skill := range e.vocab.sorted {
		if strings.Contains(norm, skill) {
			found[skill] = struct{}{}
		}
	}

	// Token equality is a second path for single-word skills.
	tokens := make(map[string]struct{})
	for _, tok := range e.tokenizer.Tokenize(norm) {
		tokens[tok] = struct{}{}
	}
	for _, skill := range e.vocab.sorted {
		if strings.Contains(skill, " ") {
			continue
		}
		if _, ok := tokens[skill]; ok {
			found[skill] = struct{}{}
		}
	}

	out := make([]string, 0, len(found))
	for s := range found {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
