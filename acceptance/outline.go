package acceptance

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholderRe matches an outline placeholder such as <a> or <first name>.
var placeholderRe = regexp.MustCompile(`<([^<>]+)>`)

// UnresolvedPlaceholderError reports placeholders left in an expanded outline
// because no Examples header matched them.
type UnresolvedPlaceholderError struct {
	Scenario     string
	Placeholders []string
}

func (e *UnresolvedPlaceholderError) Error() string {
	return fmt.Sprintf("scenario outline %q: unresolved placeholders %s", e.Scenario, strings.Join(e.Placeholders, ", "))
}

// ExpandOutline returns the concrete scenarios generated from s. A regular
// scenario expands to itself. An outline expands to one scenario per Examples
// row, in row order, with every <header> token in the name and step texts
// replaced by the row's value. Placeholders without a matching header are
// left as literal text. The template is never modified.
func (s Scenario) ExpandOutline() ([]Scenario, error) {
	out, _, err := s.expand()
	return out, err
}

// ExpandOutlineStrict is like ExpandOutline but fails with an
// *UnresolvedPlaceholderError if any placeholder has no matching header.
func (s Scenario) ExpandOutlineStrict() ([]Scenario, error) {
	out, unresolved, err := s.expand()
	if err != nil {
		return nil, err
	}
	if len(unresolved) > 0 {
		return nil, &UnresolvedPlaceholderError{Scenario: s.Name, Placeholders: unresolved}
	}
	return out, nil
}

func (s Scenario) expand() ([]Scenario, []string, error) {
	if !s.IsOutline {
		return []Scenario{s}, nil, nil
	}
	if s.Examples == nil {
		return nil, nil, fmt.Errorf("scenario %q: %w", s.Name, ErrMissingExamples)
	}

	var unresolved []string
	seen := make(map[string]bool)
	out := make([]Scenario, 0, len(s.Examples.Rows))
	for _, row := range s.Examples.Rows {
		values := rowValues(s.Examples.Headers, row)
		sub := func(text string) string {
			return placeholderRe.ReplaceAllStringFunc(text, func(tok string) string {
				name := tok[1 : len(tok)-1]
				if v, ok := values[name]; ok {
					return v
				}
				if !seen[tok] {
					seen[tok] = true
					unresolved = append(unresolved, tok)
				}
				return tok
			})
		}

		concrete := Scenario{
			Name:  sub(s.Name),
			Tags:  append([]string(nil), s.Tags...),
			Steps: make([]Step, len(s.Steps)),
		}
		for i, st := range s.Steps {
			st = st.clone()
			st.Text = sub(st.Text)
			concrete.Steps[i] = st
		}
		out = append(out, concrete)
	}
	return out, unresolved, nil
}

// rowValues maps each header to its value in row. The first occurrence of a
// duplicated header wins; headers beyond the row's length get no value.
func rowValues(headers, row []string) map[string]string {
	values := make(map[string]string, len(headers))
	for i, h := range headers {
		if i >= len(row) {
			break
		}
		if _, dup := values[h]; dup {
			continue
		}
		values[h] = row[i]
	}
	return values
}

// Expand returns a copy of the feature with every outline replaced by its
// concrete scenarios. With strict set, unresolved placeholders are an error.
func (f *Feature) Expand(strict bool) (*Feature, error) {
	out := &Feature{
		Name:        f.Name,
		Description: f.Description,
		Tags:        append([]string(nil), f.Tags...),
		SourceFile:  f.SourceFile,
	}
	if f.Background != nil {
		bg := &Background{Steps: make([]Step, len(f.Background.Steps))}
		for i, st := range f.Background.Steps {
			bg.Steps[i] = st.clone()
		}
		out.Background = bg
	}
	for _, sc := range f.Scenarios {
		var (
			expanded []Scenario
			err      error
		)
		if strict {
			expanded, err = sc.ExpandOutlineStrict()
		} else {
			expanded, err = sc.ExpandOutline()
		}
		if err != nil {
			return nil, err
		}
		out.Scenarios = append(out.Scenarios, expanded...)
	}
	return out, nil
}
