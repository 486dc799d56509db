package commands

import (
	"github.com/spf13/cobra"

	"quietest/internal/storage"
)

// ShowCommand handles the show command
type ShowCommand struct {
	storage   storage.Storage
	processor *Processor
}

// NewShowCommand creates a new ShowCommand
func NewShowCommand(st storage.Storage, processor *Processor) *ShowCommand {
	return &ShowCommand{
		storage:   st,
		processor: processor,
	}
}

// Execute runs the command
func (sc *ShowCommand) Execute(cmd *cobra.Command, args []string) error {
	run, err := sc.storage.Load()
	if err != nil {
		return err
	}

	// The stored run is already complete, don't store it again
	return sc.processor.Process(run.Raw(), false)
}
