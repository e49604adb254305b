// internal/report/console.go
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mwiater/benchpct/internal/stats"
)

// lineStyles decorates the parts of the line-oriented rendering.
type lineStyles struct {
	header func(string) string
	name   func(string) string
	label  func(string) string
	value  func(string) string
}

func plain(s string) string { return s }

var plainStyles = lineStyles{header: plain, name: plain, label: plain, value: plain}

// consoleStyles colors output when w is a terminal. lipgloss falls back to
// plain text for anything else (pipes, buffers, files).
func consoleStyles(w io.Writer) lineStyles {
	r := lipgloss.NewRenderer(w)
	headerStyle := r.NewStyle().Foreground(lipgloss.Color("244"))
	nameStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle := r.NewStyle().Foreground(lipgloss.Color("205"))
	valueStyle := r.NewStyle().Foreground(lipgloss.Color("255"))
	return lineStyles{
		header: func(s string) string { return headerStyle.Render(s) },
		name:   func(s string) string { return nameStyle.Render(s) },
		label:  func(s string) string { return labelStyle.Render(s) },
		value:  func(s string) string { return valueStyle.Render(s) },
	}
}

// WriteConsole prints every row as a "Benchmark: <name>" header followed by
// one line per percentile, each block preceded by a blank line.
func WriteConsole(w io.Writer, rows []stats.Row) error {
	st := consoleStyles(w)
	for _, r := range rows {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		if err := writeBlock(w, r, st); err != nil {
			return err
		}
	}
	return nil
}

func writeBlock(w io.Writer, r stats.Row, st lineStyles) error {
	var b strings.Builder
	b.WriteString(st.header("Benchmark:") + " " + st.name(r.Case) + "\n")
	for i, p := range r.Percentiles {
		label := fmt.Sprintf("P%2s:", stats.FormatPercentile(p))
		b.WriteString("  " + st.label(label) + " " + st.value(fmt.Sprintf("%.3f", r.Values[i])) + " ns\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
