package runner

import (
	"fmt"
	"time"

	"github.com/eykd/behave-go/acceptance"
)

// StepStatus is the outcome of a single step unit.
type StepStatus int

const (
	// StatusPassed means the handler and its step hooks succeeded.
	StatusPassed StepStatus = iota
	// StatusFailed means the handler or a step hook returned an error, panicked or timed out.
	StatusFailed
	// StatusUndefined means no definition matched the step text.
	StatusUndefined
	// StatusAmbiguous means more than one definition matched the step text.
	StatusAmbiguous
)

func (s StepStatus) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusUndefined:
		return "undefined"
	case StatusAmbiguous:
		return "ambiguous"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name.
func (s StepStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name.
func (s *StepStatus) UnmarshalText(b []byte) error {
	switch string(b) {
	case "passed":
		*s = StatusPassed
	case "failed":
		*s = StatusFailed
	case "undefined":
		*s = StatusUndefined
	case "ambiguous":
		*s = StatusAmbiguous
	default:
		return fmt.Errorf("unknown step status %q", b)
	}
	return nil
}

// StepResult is the outcome of one executed step. Steps after a failure are
// never attempted and have no result.
type StepResult struct {
	Step     string             `json:"step"`
	Keyword  acceptance.Keyword `json:"keyword"`
	Passed   bool               `json:"passed"`
	Status   StepStatus         `json:"status"`
	Error    string             `json:"error,omitempty"`
	Value    any                `json:"value,omitempty"`
	Duration time.Duration      `json:"duration"`
}

// ScenarioResult is the outcome of one concrete scenario, background steps included.
type ScenarioResult struct {
	Name        string        `json:"name"`
	Tags        []string      `json:"tags,omitempty"`
	Passed      bool          `json:"passed"`
	StepResults []StepResult  `json:"stepResults"`
	Error       string        `json:"error,omitempty"`
	Duration    time.Duration `json:"duration"`
}

// FailedStep returns the result of the step that failed the scenario, if any.
func (s *ScenarioResult) FailedStep() (*StepResult, bool) {
	for i := range s.StepResults {
		if !s.StepResults[i].Passed {
			return &s.StepResults[i], true
		}
	}
	return nil, false
}

// FeatureResult is the outcome of one RunFeature call. Passed and Failed
// count concrete scenarios, so an outline contributes one count per row.
type FeatureResult struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Duration  time.Duration    `json:"duration"`
}

func (f *FeatureResult) add(sr ScenarioResult) {
	f.Scenarios = append(f.Scenarios, sr)
	if sr.Passed {
		f.Passed++
	} else {
		f.Failed++
	}
}

// Report aggregates feature results from one or more runs. Runners never
// accumulate results themselves; callers merge what they need.
type Report struct {
	Features []*FeatureResult `json:"features"`
	Passed   int              `json:"passed"`
	Failed   int              `json:"failed"`
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{Features: []*FeatureResult{}}
}

// Merge appends a feature result and adds its counters.
func (r *Report) Merge(fr *FeatureResult) {
	r.Features = append(r.Features, fr)
	r.Passed += fr.Passed
	r.Failed += fr.Failed
}

// Add merges every feature result of other into r.
func (r *Report) Add(other *Report) {
	for _, fr := range other.Features {
		r.Merge(fr)
	}
}

// Success reports whether no scenario failed.
func (r *Report) Success() bool {
	return r.Failed == 0
}

// StepCounts tallies executed steps by status across the report.
func (r *Report) StepCounts() map[StepStatus]int {
	counts := make(map[StepStatus]int)
	for _, fr := range r.Features {
		for _, sr := range fr.Scenarios {
			for _, st := range sr.StepResults {
				counts[st.Status]++
			}
		}
	}
	return counts
}
