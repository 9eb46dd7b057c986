// Package report renders runner results for people and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/eykd/behave-go/internal/runner"
)

// Console writes a human-readable report: a result tree per feature
// followed by a summary table. Colors are used only when w is a terminal.
type Console struct {
	w      io.Writer
	passed lipgloss.Style
	failed lipgloss.Style
	muted  lipgloss.Style
	header lipgloss.Style
}

// NewConsole returns a Console writing to w.
func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		w:      w,
		passed: r.NewStyle().Foreground(lipgloss.Color("2")),
		failed: r.NewStyle().Foreground(lipgloss.Color("1")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("8")),
		header: r.NewStyle().Bold(true),
	}
}

// Write renders the report.
func (c *Console) Write(rep *runner.Report) error {
	var b strings.Builder
	for _, fr := range rep.Features {
		c.writeFeature(&b, fr)
		b.WriteByte('\n')
	}
	if _, err := io.WriteString(c.w, b.String()); err != nil {
		return err
	}

	c.writeSummaryTable(rep)

	_, err := fmt.Fprintf(c.w, "%s\n%s\n", scenarioLine(rep), stepLine(rep.StepCounts()))
	return err
}

func (c *Console) writeFeature(b *strings.Builder, fr *runner.FeatureResult) {
	b.WriteString(c.header.Render("Feature: " + fr.Name))
	b.WriteByte('\n')
	for _, sr := range fr.Scenarios {
		mark, style := "✔", c.passed
		if !sr.Passed {
			mark, style = "✘", c.failed
		}
		fmt.Fprintf(b, "  %s\n", style.Render(mark+" Scenario: "+sr.Name))
		for _, st := range sr.StepResults {
			fmt.Fprintf(b, "      %s\n", c.stepLine(st))
			if st.Error != "" {
				fmt.Fprintf(b, "        %s\n", c.failed.Render(st.Error))
			}
		}
		if !sr.Passed {
			if _, stepFailed := sr.FailedStep(); !stepFailed && sr.Error != "" {
				fmt.Fprintf(b, "      %s\n", c.failed.Render(sr.Error))
			}
		}
	}
}

func (c *Console) stepLine(st runner.StepResult) string {
	text := string(st.Keyword) + " " + st.Step
	switch st.Status {
	case runner.StatusPassed:
		return c.passed.Render("✔ " + text)
	case runner.StatusUndefined, runner.StatusAmbiguous:
		return c.failed.Render("? "+text) + " " + c.muted.Render("("+st.Status.String()+")")
	default:
		return c.failed.Render("✘ " + text)
	}
}

func (c *Console) writeSummaryTable(rep *runner.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(c.w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Feature", "Scenarios", "Passed", "Failed", "Duration"})

	var total time.Duration
	for _, fr := range rep.Features {
		total += fr.Duration
		t.AppendRow(table.Row{fr.Name, len(fr.Scenarios), fr.Passed, fr.Failed, fr.Duration.Round(time.Millisecond)})
	}
	t.AppendFooter(table.Row{"Total", rep.Passed + rep.Failed, rep.Passed, rep.Failed, total.Round(time.Millisecond)})
	t.Render()
}

func scenarioLine(rep *runner.Report) string {
	return fmt.Sprintf("%d scenarios (%d passed, %d failed)", rep.Passed+rep.Failed, rep.Passed, rep.Failed)
}

func stepLine(counts map[runner.StepStatus]int) string {
	total := 0
	for _, n := range counts {
		total += n
	}
	return fmt.Sprintf("%d steps (%d passed, %d failed, %d undefined, %d ambiguous)",
		total,
		counts[runner.StatusPassed],
		counts[runner.StatusFailed],
		counts[runner.StatusUndefined],
		counts[runner.StatusAmbiguous])
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, rep *runner.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
