package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"quietest/internal/domain"
	"quietest/internal/report"
)

// FailureViewer displays the failed tests of a run in an interactive TUI
type FailureViewer struct {
	out io.Writer
}

// NewFailureViewer creates a FailureViewer. Messages that do not need the
// TUI, like an empty failure list, go to out.
func NewFailureViewer(out io.Writer) *FailureViewer {
	return &FailureViewer{out: out}
}

// View opens the viewer on the failures of run
func (fv *FailureViewer) View(run domain.RunResult) error {
	failures := report.Failures(run.Raw())
	if len(failures) == 0 {
		PrintSuccess(fv.out, run)
		return nil
	}

	// Reviewed marks only live for the session
	reviewed := make(map[int]bool)

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, failure := range failures {
		list.AddItem(failureListItem(i, failure, false), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 2, 0, false).
		AddItem(detailsView, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(failureHeader(len(failures), len(reviewed)))
	}

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(failures) {
			return
		}
		statsView.SetText(failureStats(failures[index]))
		detailsView.SetText(failureDetails(failures[index]))
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'r', 'R':
				index := list.GetCurrentItem()
				if index < 0 || index >= len(failures) {
					return nil
				}
				if reviewed[index] {
					delete(reviewed, index)
				} else {
					reviewed[index] = true
				}
				list.SetItemText(index, failureListItem(index, failures[index], reviewed[index]), "")
				updateHeader()
				return nil
			case 'q':
				app.Stop()
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})

	updateHeader()
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func failureHeader(total, reviewed int) string {
	return fmt.Sprintf(" Test Failures (%d total, %d reviewed) | ↑↓ navigate, [yellow]R[white] mark reviewed, → details, ← back, q to exit ", total, reviewed)
}

// failureListItem formats a list entry using tview color tags
func failureListItem(index int, failure report.Entry, reviewed bool) string {
	name := tview.Escape(failure.Test.Name)
	if reviewed {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, name)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, name)
}

func failureStats(failure report.Entry) string {
	return fmt.Sprintf("[cyan]target:[white] [yellow]%s[white] [cyan]case:[white] [yellow]%s[white]\n",
		tview.Escape(failure.Target), tview.Escape(failure.Case))
}

func failureDetails(failure report.Entry) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "[red]%s Test: %s[white]\n\n", failure.Test.Status.Glyph(), tview.Escape(failure.Test.Name))
	fmt.Fprintf(&builder, "[cyan]Target:[white]   %s\n", tview.Escape(failure.Target))
	fmt.Fprintf(&builder, "[cyan]Case:[white]     %s\n", tview.Escape(failure.Case))
	fmt.Fprintf(&builder, "[cyan]Status:[white]   %s\n", tview.Escape(failure.Test.Status.String()))
	fmt.Fprintf(&builder, "[cyan]Duration:[white] %s\n", formatDuration(failure.Test.Duration))
	return builder.String()
}
