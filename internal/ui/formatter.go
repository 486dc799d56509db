package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"quietest/internal/domain"
)

// PrintSuccess prints the one-line summary of a successful run
func PrintSuccess(w io.Writer, run domain.RunResult) {
	color.New(color.FgGreen).Fprintf(w, "✓ Ran %d test cases with success\n", run.CountCases())
}

// PrintWarning prints a yellow operator message
func PrintWarning(w io.Writer, format string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(w, format+"\n", args...)
}

// PrintHeader prints a cyan section header
func PrintHeader(w io.Writer, format string, args ...interface{}) {
	color.New(color.FgCyan).Fprintf(w, format+"\n", args...)
}

// PrintTestTable prints every test of run as a table, one row per test,
// with pass/skip/fail totals in the footer
func PrintTestTable(w io.Writer, run domain.RunResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	t.AppendHeader(table.Row{"Target", "Case", "Test", "Status", "Duration"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Target", AutoMerge: true},
		{Name: "Case", AutoMerge: true},
		{Name: "Test", WidthMax: 80, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Duration", Align: text.AlignRight},
	})

	var passed, skipped, failed int
	for _, target := range run.Targets {
		for _, c := range target.Cases {
			for _, test := range c.Tests {
				switch test.Status.Kind() {
				case domain.KindSucceeded:
					passed++
				case domain.KindSkipped:
					skipped++
				case domain.KindFailed:
					failed++
				}
				t.AppendRow(table.Row{
					target.Name,
					c.Name,
					test.Name,
					test.Status.String(),
					formatDuration(test.Duration),
				})
			}
		}
		t.AppendSeparator()
	}

	t.AppendFooter(table.Row{
		"TOTAL",
		"",
		run.CountTests(),
		fmt.Sprintf("%d passed, %d skipped, %d failed", passed, skipped, failed),
		"",
	})

	switch {
	case failed > 0:
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	case skipped > 0:
		t.SetStyle(table.StyleColoredBlackOnYellowWhite)
	default:
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	}
	if color.NoColor {
		t.SetStyle(table.StyleLight)
	}

	t.Render()
}

func formatDuration(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64) + "s"
}
