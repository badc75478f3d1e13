package matching

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Vectorization is fixed: unigram+bigram features, English stopword
// removal, smoothed inverse-document-frequency weighting and a cap on
// the retained feature count. The weights are not runtime-tunable.
const maxFeatures = 5000

// vectorTokenPattern keeps tokens of two or more word characters, the
// conventional vectorizer token rule.
var vectorTokenPattern = regexp.MustCompile(`\w\w+`)

// TextSimilarity computes the lexical similarity of two documents as the
// cosine of their TF-IDF vectors in a shared two-document vector space.
// The result is in [0,1]; symmetric; 0.0 when either normalized document
// is empty or contributes no features. Deterministic for fixed inputs.
func TextSimilarity(a, b string) float64 {
	aNorm := strings.ToLower(Normalize(a))
	bNorm := strings.ToLower(Normalize(b))
	if aNorm == "" || bNorm == "" {
		return 0.0
	}

	countsA := termCounts(vectorTerms(aNorm))
	countsB := termCounts(vectorTerms(bNorm))
	if len(countsA) == 0 || len(countsB) == 0 {
		return 0.0
	}

	features := selectFeatures(countsA, countsB)

	// Smoothed IDF over the two-document corpus: ln((1+n)/(1+df)) + 1.
	var dot, magA, magB float64
	for _, term := range features {
		ca := countsA[term]
		cb := countsB[term]
		df := 0
		if ca > 0 {
			df++
		}
		if cb > 0 {
			df++
		}
		idf := math.Log(3.0/float64(1+df)) + 1.0
		wa := float64(ca) * idf
		wb := float64(cb) * idf
		dot += wa * wb
		magA += wa * wa
		magB += wb * wb
	}
	if magA == 0 || magB == 0 {
		return 0.0
	}

	sim := dot / (math.Sqrt(magA) * math.Sqrt(magB))
	if sim < 0 {
		return 0.0
	}
	if sim > 1 {
		return 1.0
	}
	return sim
}

// vectorTerms produces the unigram and bigram features of one document.
// Stopwords are removed before bigram formation, so "machine and
// learning" still yields the bigram "machine learning".
func vectorTerms(text string) []string {
	raw := vectorTokenPattern.FindAllString(text, -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if !englishStopwords[t] {
			tokens = append(tokens, t)
		}
	}

	terms := make([]string, 0, len(tokens)*2)
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

func termCounts(terms []string) map[string]int {
	counts := make(map[string]int, len(terms))
	for _, t := range terms {
		counts[t]++
	}
	return counts
}

// selectFeatures returns the union of both documents' terms, capped at
// maxFeatures. When the cap applies, terms with the highest corpus
// frequency are kept; ties break lexicographically.
func selectFeatures(countsA, countsB map[string]int) []string {
	features := make([]string, 0, len(countsA)+len(countsB))
	seen := make(map[string]struct{}, len(countsA)+len(countsB))
	for t := range countsA {
		seen[t] = struct{}{}
		features = append(features, t)
	}
	for t := range countsB {
		if _, ok := seen[t]; !ok {
			features = append(features, t)
		}
	}
	if len(features) <= maxFeatures {
		return features
	}

	sort.Slice(features, func(i, j int) bool {
		fi := countsA[features[i]] + countsB[features[i]]
		fj := countsA[features[j]] + countsB[features[j]]
		if fi != fj {
			return fi > fj
		}
		return features[i] < features[j]
	})
	return features[:maxFeatures]
}
