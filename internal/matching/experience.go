package matching

import (
	"regexp"
	"strconv"
	"strings"
)

var yearsPattern = regexp.MustCompile(`(\d{1,2})\s*\+?\s*(years|year|yrs)`)

// EstimateYears extracts a years-of-experience figure from phrases like
// "3 years of experience" or "5+ yrs". When several figures appear the
// maximum wins. The second return value is false when no figure is found
// or the input is empty.
func EstimateYears(text string) (int, bool) {
	if text == "" {
		return 0, false
	}

	norm := strings.ToLower(Normalize(text))
	matches := yearsPattern.FindAllStringSubmatch(norm, -1)
	if len(matches) == 0 {
		return 0, false
	}

	maxYears := 0
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > maxYears {
			maxYears = n
		}
	}
	return maxYears, true
}
