package steps

import (
	"fmt"
	"regexp"
)

// Pattern decides whether a step text is handled by a definition and
// extracts the handler parameters from it.
type Pattern interface {
	// Match reports whether text matches and returns the captured parameters.
	Match(text string) ([]string, bool)
	// String returns the pattern source for diagnostics.
	String() string
}

// Literal matches step text by exact string equality. It captures no parameters.
type Literal string

// Match implements Pattern.
func (l Literal) Match(text string) ([]string, bool) {
	if string(l) != text {
		return nil, false
	}
	return []string{}, true
}

func (l Literal) String() string { return fmt.Sprintf("%q", string(l)) }

// Regexp matches step text with an unanchored regular expression test and
// captures its submatches as parameters.
type Regexp struct {
	re *regexp.Regexp
}

// NewRegexp wraps re as a Pattern.
func NewRegexp(re *regexp.Regexp) Regexp {
	return Regexp{re: re}
}

// MustRegexp compiles expr and wraps it as a Pattern. It panics if expr is invalid.
func MustRegexp(expr string) Regexp {
	return Regexp{re: regexp.MustCompile(expr)}
}

// Match implements Pattern.
func (r Regexp) Match(text string) ([]string, bool) {
	m := r.re.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return m[1:], true
}

func (r Regexp) String() string { return "/" + r.re.String() + "/" }

// toPattern converts a registration expression into a Pattern. Strings are
// literal; *regexp.Regexp values are regular expressions.
func toPattern(expr any) Pattern {
	switch p := expr.(type) {
	case Pattern:
		return p
	case string:
		return Literal(p)
	case *regexp.Regexp:
		return NewRegexp(p)
	default:
		panic(fmt.Sprintf("steps: unsupported pattern type %T (want string, *regexp.Regexp or Pattern)", expr))
	}
}
