package steps

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUndefined is matched by errors.Is for steps with no matching definition.
	ErrUndefined = errors.New("undefined step")
	// ErrAmbiguous is matched by errors.Is for steps with more than one matching definition.
	ErrAmbiguous = errors.New("ambiguous step")
)

// UndefinedStepError reports a step whose text matches no definition.
type UndefinedStepError struct {
	Text string
}

func (e *UndefinedStepError) Error() string {
	return fmt.Sprintf("undefined step: %q", e.Text)
}

// Is reports whether target is ErrUndefined.
func (e *UndefinedStepError) Is(target error) bool { return target == ErrUndefined }

// AmbiguousMatchError reports a step whose text matches several definitions.
type AmbiguousMatchError struct {
	Text     string
	Patterns []string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("ambiguous step: %q matches %d definitions: %s", e.Text, len(e.Patterns), strings.Join(e.Patterns, ", "))
}

// Is reports whether target is ErrAmbiguous.
func (e *AmbiguousMatchError) Is(target error) bool { return target == ErrAmbiguous }
