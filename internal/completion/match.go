package completion

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// FindMatches returns every whole word in lines that starts with partial where
// partial is not preceded by a word character, as partial followed by a match
// of continuation.
//
// lines must be newest first. Within one line the rightmost occurrence comes
// first. Duplicates are dropped keeping the first, most recent, occurrence.
// No case folding is applied.
func FindMatches(partial string, lines []string, continuation *Pattern) ([]string, error) {
	if partial == "" {
		return nil, nil
	}

	re, err := compile(`(?<!\w)` + regexp2.Escape(partial) + `(?:` + continuation.String() + `)`)
	if err != nil {
		return nil, fmt.Errorf("failed to build match pattern: %w", err)
	}

	var found []string
	for _, line := range lines {
		perLine, err := findAll(re, line)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line: %w", err)
		}
		for i := len(perLine) - 1; i >= 0; i-- {
			found = append(found, perLine[i])
		}
	}

	return Dedupe(found), nil
}

// Dedupe removes exact duplicates keeping the first occurrence of each value
func Dedupe(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func findAll(re *regexp2.Regexp, s string) ([]string, error) {
	var out []string
	m, err := re.FindStringMatch(s)
	for m != nil && err == nil {
		out = append(out, m.String())
		m, err = re.FindNextMatch(m)
	}
	return out, err
}
