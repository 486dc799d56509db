package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"quietest/internal/domain"
)

var (
	passed  = color.New(color.FgGreen)
	skipped = color.New(color.FgYellow)
	failed  = color.New(color.FgRed)
	unknown = color.New(color.FgMagenta)
)

// dumper writes the tree one line at a time, indenting two spaces per level
type dumper struct {
	w *bufio.Writer
}

func writeDump(w io.Writer, run domain.RunResult) error {
	d := &dumper{w: bufio.NewWriter(w)}

	d.container(0, "RunResult")
	d.field(1, "succeeded", strconv.FormatBool(run.Succeeded))
	d.container(1, "targets: %s", elements(len(run.Targets)))
	for _, target := range run.Targets {
		d.container(2, "Target")
		d.field(3, "name", strconv.Quote(target.Name))
		d.container(3, "cases: %s", elements(len(target.Cases)))
		for _, c := range target.Cases {
			d.container(4, "Case")
			d.field(5, "name", strconv.Quote(c.Name))
			d.container(5, "tests: %s", elements(len(c.Tests)))
			for _, test := range c.Tests {
				d.container(6, "Test")
				d.field(7, "name", strconv.Quote(test.Name))
				d.field(7, "status", statusText(test.Status))
				d.field(7, "duration", strconv.FormatFloat(test.Duration, 'f', -1, 64))
			}
		}
	}
	if run.CoverageFile == "" {
		d.field(1, "coverageFile", "nil")
	} else {
		d.field(1, "coverageFile", strconv.Quote(run.CoverageFile))
	}

	return d.w.Flush()
}

func (d *dumper) container(depth int, format string, args ...interface{}) {
	fmt.Fprintf(d.w, "%s▿ %s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (d *dumper) field(depth int, name, value string) {
	fmt.Fprintf(d.w, "%s- %s: %s\n", strings.Repeat("  ", depth), name, value)
}

func elements(n int) string {
	if n == 1 {
		return "1 element"
	}
	return fmt.Sprintf("%d elements", n)
}

// statusText pairs the glyph with the full label so unknown raw labels survive
func statusText(s domain.Status) string {
	text := s.Glyph() + " " + s.String()
	switch s.Kind() {
	case domain.KindSucceeded:
		return passed.Sprint(text)
	case domain.KindSkipped:
		return skipped.Sprint(text)
	case domain.KindFailed:
		return failed.Sprint(text)
	default:
		return unknown.Sprint(text)
	}
}
