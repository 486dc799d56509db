package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"quietest/internal/config"
	"quietest/internal/domain"
	"quietest/internal/execution"
	"quietest/internal/ui"
)

// TestRunner builds the project and collects its test report
type TestRunner interface {
	SetHeartbeat(heartbeat *execution.Heartbeat)
	Run(ctx context.Context) (domain.RawRun, error)
}

// DatabaseProvisioner creates the test database before a run
type DatabaseProvisioner interface {
	EnsureDatabase(ctx context.Context, name string) (bool, error)
}

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	runner    TestRunner
	dbManager DatabaseProvisioner
	processor *Processor
	logger    *log.Logger
	errOut    io.Writer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	runner TestRunner,
	dbManager DatabaseProvisioner,
	processor *Processor,
	logger *log.Logger,
	errOut io.Writer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		runner:    runner,
		dbManager: dbManager,
		processor: processor,
		logger:    logger,
		errOut:    errOut,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if rc.config.Database != "" {
		created, err := rc.dbManager.EnsureDatabase(ctx, rc.config.Database)
		if err != nil {
			return fmt.Errorf("database setup failed: %w", err)
		}
		if created {
			rc.logger.Info("created test database", "name", rc.config.Database)
		}
	}

	spinner := ui.NewSpinner(rc.errOut)
	rc.runner.SetHeartbeat(execution.NewHeartbeat(rc.config.HeartbeatInterval, spinner.Tick))

	raw, err := rc.runner.Run(ctx)
	spinner.Finish()
	if err != nil {
		var buildErr *domain.BuildError
		if errors.As(err, &buildErr) {
			if output := strings.TrimSpace(buildErr.Output); output != "" {
				fmt.Fprintln(rc.errOut, output)
			}
		}
		return err
	}

	return rc.processor.Process(raw, true)
}

func joinTools() string {
	return strings.Join(config.ToolNames(), ", ")
}
