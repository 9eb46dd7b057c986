package acceptance

import "regexp"

// NewStep returns a step with the given keyword and text.
func NewStep(kw Keyword, text string) Step {
	return Step{Keyword: kw, Text: text}
}

// WithDataTable returns a copy of s carrying the given table.
func (s Step) WithDataTable(rows ...[]string) Step {
	s.DataTable = DataTable(rows).Clone()
	return s
}

// WithDocString returns a copy of s carrying the given doc string.
func (s Step) WithDocString(doc string) Step {
	s.DocString = &doc
	return s
}

// ExtractParameters applies re to the step text and returns the captured
// groups. It returns false when the pattern does not match.
func (s Step) ExtractParameters(re *regexp.Regexp) ([]string, bool) {
	m := re.FindStringSubmatch(s.Text)
	if m == nil {
		return nil, false
	}
	return m[1:], true
}

// Clone returns a deep copy of the table, or nil for a nil table.
func (t DataTable) Clone() DataTable {
	if t == nil {
		return nil
	}
	out := make(DataTable, len(t))
	for i, row := range t {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// clone returns a deep copy of the step.
func (s Step) clone() Step {
	out := s
	out.DataTable = s.DataTable.Clone()
	if s.DocString != nil {
		doc := *s.DocString
		out.DocString = &doc
	}
	return out
}
