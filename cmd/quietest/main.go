package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"quietest/internal/cli"
	"quietest/internal/cli/commands"
	"quietest/internal/config"
	"quietest/internal/domain"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "quietest",
		Short:         "Quiet test runner",
		Long:          `Runs a project's build and tests and prints nothing but a summary when everything passes. On failure only the failing targets, cases and tests are shown, as a structured dump or as JSON.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "quietest",
		Level:  log.InfoLevel,
	})

	// Create initial config with defaults, replaced once flags are parsed
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg, logger, os.Stdout, os.Stderr)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil && !errors.Is(err, domain.ErrTestsFailed) {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.ExitCode(err))
}
