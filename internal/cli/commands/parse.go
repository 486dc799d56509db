package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"quietest/internal/config"
	"quietest/internal/parser"
)

// ParseCommand handles the parse command
type ParseCommand struct {
	config    *config.Config
	processor *Processor
	stdin     io.Reader
}

// NewParseCommand creates a new ParseCommand
func NewParseCommand(cfg *config.Config, processor *Processor, stdin io.Reader) *ParseCommand {
	return &ParseCommand{
		config:    cfg,
		processor: processor,
		stdin:     stdin,
	}
}

// Execute runs the command
func (pc *ParseCommand) Execute(cmd *cobra.Command, args []string) error {
	format := pc.config.Flags.Format
	if format == "" {
		format = pc.config.ReportFormat
	}
	reportParser, err := parser.New(parser.Format(format))
	if err != nil {
		return err
	}

	input := pc.stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open report: %w", err)
		}
		defer f.Close()
		input = f
	}

	raw, err := reportParser.Parse(input)
	if err != nil {
		return fmt.Errorf("parse report: %w", err)
	}
	return pc.processor.Process(raw, true)
}
