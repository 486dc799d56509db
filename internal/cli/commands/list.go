package commands

import (
	"io"

	"github.com/spf13/cobra"

	"quietest/internal/config"
	"quietest/internal/report"
	"quietest/internal/storage"
	"quietest/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config  *config.Config
	storage storage.Storage
	out     io.Writer
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, st storage.Storage, out io.Writer) *ListCommand {
	return &ListCommand{
		config:  cfg,
		storage: st,
		out:     out,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	run, err := lc.storage.Load()
	if err != nil {
		return err
	}

	// Filter tests
	if pattern := lc.config.Flags.Filter; pattern != "" {
		run = report.FilterByName(run, pattern)
	}

	if run.CountTests() == 0 {
		ui.PrintWarning(lc.out, "No tests found")
		return nil
	}

	ui.PrintHeader(lc.out, "Found %d test(s) in %d case(s):", run.CountTests(), run.CountCases())
	ui.PrintTestTable(lc.out, run)
	return nil
}
