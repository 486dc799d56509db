package commands

import (
	"github.com/spf13/cobra"

	"quietest/internal/storage"
	"quietest/internal/ui"
)

// FailuresCommand handles the failures command
type FailuresCommand struct {
	storage storage.Storage
	viewer  ui.Viewer
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(st storage.Storage, viewer ui.Viewer) *FailuresCommand {
	return &FailuresCommand{
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	run, err := fc.storage.Load()
	if err != nil {
		return err
	}

	return fc.viewer.View(run)
}
