package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// Spinner shows that a long test run is still alive
type Spinner struct {
	bar *progressbar.ProgressBar
}

// NewSpinner creates a spinner writing to w (usually stderr)
func NewSpinner(w io.Writer) *Spinner {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString("Running tests")),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(w),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\r")
		}),
	)

	return &Spinner{bar: bar}
}

// Tick advances the spinner and shows the elapsed time
func (s *Spinner) Tick(elapsed time.Duration) {
	s.bar.Describe(color.CyanString("Running tests: ") + elapsed.Round(time.Second).String())
	_ = s.bar.Add(1)
}

// Finish clears the spinner
func (s *Spinner) Finish() {
	_ = s.bar.Finish()
}
