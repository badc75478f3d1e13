package matching

import (
	"strings"
	"unicode"
)

// Tokenizer splits text into a sequence of token strings. Implementations
// must be safe for concurrent use; the engine holds one instance for the
// lifetime of the process.
type Tokenizer interface {
	Tokenize(text string) []string
}

// WordTokenizer is the default Tokenizer. It scans runes and treats
// '+', '#', '.' and '/' as word characters so tech terms like "c++",
// "c#", "node.js" and "ci/cd" survive as single tokens. Trailing dots
// are stripped so sentence-final tokens still match.
type WordTokenizer struct{}

func (WordTokenizer) Tokenize(text string) []string {
	tokens := make([]string, 0, 64)
	var word strings.Builder
	flush := func() {
		if word.Len() == 0 {
			return
		}
		if tok := strings.TrimRight(word.String(), "."); tok != "" {
			tokens = append(tokens, tok)
		}
		word.Reset()
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' || r == '/' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}
