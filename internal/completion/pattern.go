// Package completion completes the word under the cursor from recent channel
// history and cycles through the candidates in place.
package completion

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// DefaultMatchTimeout bounds a single regexp evaluation so a pathological
// user pattern cannot freeze the input line.
const DefaultMatchTimeout = 250 * time.Millisecond

// Pattern is a compiled word pattern (Perl/Python syntax, lookarounds allowed)
type Pattern struct {
	source string
	re     *regexp2.Regexp
	// tail is the same expression anchored at the end of the input
	tail *regexp2.Regexp
}

// CompilePattern compiles expr as a word pattern
func CompilePattern(expr string) (*Pattern, error) {
	if expr == "" {
		return nil, fmt.Errorf("pattern is empty")
	}
	re, err := compile(expr)
	if err != nil {
		return nil, err
	}
	tail, err := compile(`(?:` + expr + `)\z`)
	if err != nil {
		return nil, err
	}
	return &Pattern{source: expr, re: re, tail: tail}, nil
}

// MustCompilePattern is like CompilePattern but panics on error
func MustCompilePattern(expr string) *Pattern {
	p, err := CompilePattern(expr)
	if err != nil {
		panic(fmt.Sprintf("completion: compile %q: %v", expr, err))
	}
	return p
}

// String returns the source expression
func (p *Pattern) String() string {
	return p.source
}

// suffix returns the match of the pattern that ends exactly at the end of s
func (p *Pattern) suffix(s string) (string, bool, error) {
	m, err := p.tail.FindStringMatch(s)
	if err != nil || m == nil {
		return "", false, err
	}
	return m.String(), true, nil
}

func compile(expr string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = DefaultMatchTimeout
	return re, nil
}
