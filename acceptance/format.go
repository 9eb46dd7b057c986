package acceptance

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	blockIndent = "  "
	stepIndent  = "    "
	tableIndent = "      "
)

// Format renders the feature as Gherkin-like text. The output is
// deterministic: a tag line before each tagged Feature or Scenario header,
// one blank line between blocks, and table columns padded to the widest cell.
func Format(f *Feature) string {
	var b strings.Builder

	writeTags(&b, "", f.Tags)
	b.WriteString("Feature: ")
	b.WriteString(f.Name)
	b.WriteByte('\n')
	if f.Description != "" {
		b.WriteString(blockIndent)
		b.WriteString(f.Description)
		b.WriteByte('\n')
	}

	if f.Background != nil {
		b.WriteByte('\n')
		b.WriteString(blockIndent)
		b.WriteString("Background:\n")
		writeSteps(&b, f.Background.Steps)
	}

	for _, sc := range f.Scenarios {
		b.WriteByte('\n')
		writeScenario(&b, sc)
	}
	return b.String()
}

func writeScenario(b *strings.Builder, sc Scenario) {
	writeTags(b, blockIndent, sc.Tags)
	b.WriteString(blockIndent)
	if sc.IsOutline {
		b.WriteString("Scenario Outline: ")
	} else {
		b.WriteString("Scenario: ")
	}
	b.WriteString(sc.Name)
	b.WriteByte('\n')
	writeSteps(b, sc.Steps)

	if sc.IsOutline && sc.Examples != nil {
		b.WriteString(stepIndent)
		b.WriteString("Examples:\n")
		rows := make([][]string, 0, len(sc.Examples.Rows)+1)
		rows = append(rows, sc.Examples.Headers)
		rows = append(rows, sc.Examples.Rows...)
		writeTable(b, rows)
	}
}

func writeTags(b *strings.Builder, indent string, tags []string) {
	if len(tags) == 0 {
		return
	}
	b.WriteString(indent)
	for i, t := range tags {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('@')
		b.WriteString(strings.TrimPrefix(t, "@"))
	}
	b.WriteByte('\n')
}

func writeSteps(b *strings.Builder, steps []Step) {
	for _, st := range steps {
		b.WriteString(stepIndent)
		b.WriteString(string(st.Keyword))
		b.WriteByte(' ')
		b.WriteString(st.Text)
		b.WriteByte('\n')
		if len(st.DataTable) > 0 {
			writeTable(b, st.DataTable)
		}
		if st.DocString != nil {
			writeDocString(b, *st.DocString)
		}
	}
}

func writeDocString(b *strings.Builder, doc string) {
	b.WriteString(tableIndent)
	b.WriteString(`"""`)
	b.WriteByte('\n')
	if doc != "" {
		for _, line := range strings.Split(doc, "\n") {
			if line != "" {
				b.WriteString(tableIndent)
				b.WriteString(line)
			}
			b.WriteByte('\n')
		}
	}
	b.WriteString(tableIndent)
	b.WriteString(`"""`)
	b.WriteByte('\n')
}

// writeTable writes rows as a pipe-delimited table, padding each column to
// the display width of its widest cell.
func writeTable(b *strings.Builder, rows [][]string) {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			w := runewidth.StringWidth(escapeCell(cell))
			if i >= len(widths) {
				widths = append(widths, w)
			} else if w > widths[i] {
				widths[i] = w
			}
		}
	}

	for _, row := range rows {
		b.WriteString(tableIndent)
		b.WriteByte('|')
		for i, width := range widths {
			cell := ""
			if i < len(row) {
				cell = escapeCell(row[i])
			}
			b.WriteByte(' ')
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", width-runewidth.StringWidth(cell)))
			b.WriteString(" |")
		}
		b.WriteByte('\n')
	}
}

func escapeCell(cell string) string {
	return strings.ReplaceAll(cell, "|", `\|`)
}
