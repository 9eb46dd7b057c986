package acceptance

import (
	"errors"
	"testing"
)

func TestKeywordValid(t *testing.T) {
	tests := []struct {
		kw   Keyword
		want bool
	}{
		{Given, true},
		{When, true},
		{Then, true},
		{And, true},
		{But, true},
		{"GIVEN", false},
		{"", false},
		{"Scenario", false},
	}
	for _, tt := range tests {
		if got := tt.kw.Valid(); got != tt.want {
			t.Errorf("Keyword(%q).Valid() = %v, want %v", tt.kw, got, tt.want)
		}
	}
}

func TestStepZeroValue(t *testing.T) {
	var s Step
	if s.Keyword != "" {
		t.Errorf("zero Step.Keyword = %q, want empty", s.Keyword)
	}
	if s.DataTable != nil {
		t.Errorf("zero Step.DataTable = %v, want nil", s.DataTable)
	}
	if s.DocString != nil {
		t.Errorf("zero Step.DocString = %v, want nil", *s.DocString)
	}
}

func TestStepBuilders_DoNotShareState(t *testing.T) {
	rows := [][]string{{"name"}, {"alice"}}
	base := NewStep(Given, "the following users exist:")
	withTable := base.WithDataTable(rows...)
	rows[1][0] = "mallory"

	if base.DataTable != nil {
		t.Error("WithDataTable modified the receiver")
	}
	if withTable.DataTable[1][0] != "alice" {
		t.Errorf("DataTable[1][0] = %q, want %q", withTable.DataTable[1][0], "alice")
	}

	withDoc := base.WithDocString("hello")
	if base.DocString != nil {
		t.Error("WithDocString modified the receiver")
	}
	if withDoc.DocString == nil || *withDoc.DocString != "hello" {
		t.Errorf("DocString = %v, want %q", withDoc.DocString, "hello")
	}
}

func TestFeatureValidate(t *testing.T) {
	tests := []struct {
		name    string
		feature Feature
		wantErr error
	}{
		{
			name: "valid",
			feature: Feature{
				Name:       "Login",
				Background: &Background{Steps: []Step{NewStep(Given, "the app is running")}},
				Scenarios:  []Scenario{{Name: "ok", Steps: []Step{NewStep(When, "x")}}},
			},
		},
		{
			name: "bad background keyword",
			feature: Feature{
				Background: &Background{Steps: []Step{{Keyword: "Setup", Text: "x"}}},
			},
			wantErr: ErrInvalidKeyword,
		},
		{
			name: "bad scenario keyword",
			feature: Feature{
				Scenarios: []Scenario{{Name: "s", Steps: []Step{{Keyword: "given", Text: "x"}}}},
			},
			wantErr: ErrInvalidKeyword,
		},
		{
			name: "outline without examples",
			feature: Feature{
				Scenarios: []Scenario{{Name: "s", IsOutline: true, Steps: []Step{NewStep(Given, "<a>")}}},
			},
			wantErr: ErrMissingExamples,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.feature.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
