package commands

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"quietest/internal/cli"
	"quietest/internal/config"
	"quietest/internal/database"
	"quietest/internal/execution"
	"quietest/internal/storage"
	"quietest/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	Parse    *ParseCommand
	Show     *ShowCommand
	List     *ListCommand
	Failures *FailuresCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, logger *log.Logger, out, errOut io.Writer) *Commands {
	jsonStorage := storage.NewJSONStorage(cfg)
	processor := NewProcessor(cfg, jsonStorage, logger, out, errOut)
	runner := execution.NewRunner(cfg, logger)
	dbManager := database.NewDatabaseManager(cfg)
	viewer := ui.NewFailureViewer(out)

	return &Commands{
		Run:      NewRunCommand(cfg, runner, dbManager, processor, logger, errOut),
		Parse:    NewParseCommand(cfg, processor, os.Stdin),
		Show:     NewShowCommand(jsonStorage, processor),
		List:     NewListCommand(cfg, jsonStorage, out),
		Failures: NewFailuresCommand(jsonStorage, viewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config, logger *log.Logger) {
	// Every command loads the project configuration after flag parsing
	loadConfig := func(cmd *cobra.Command, args []string) error {
		if flags.Verbose {
			logger.SetLevel(log.DebugLevel)
		}
		loaded, err := config.Load(flags.ProjectPath, flags.ToConfigFlags())
		if err != nil {
			return err
		}
		*cfg = *loaded
		logger.Debug("config loaded", "project", cfg.ProjectPath, "tool", cfg.Tool, "exclude", cfg.Exclude)
		return nil
	}

	rootCmd.PersistentFlags().StringVarP(&flags.ProjectPath, "project", "C", config.DefaultProjectPath, "Project directory")
	rootCmd.PersistentFlags().BoolVar(&flags.Verbose, "verbose", false, "Enable debug logging")

	outputFlags := func(cmd *cobra.Command) {
		cmd.Flags().BoolVar(&flags.ShowAll, "show-all", false, "Print all results, even on success")
		cmd.Flags().BoolVar(&flags.JSON, "json", false, "Output in pretty printed JSON")
		cmd.Flags().StringArrayVarP(&flags.Exclude, "exclude", "e", nil, "Test name whose failure does not fail the run (repeatable)")
	}

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Build and test the project, printing only failures",
		Long:    "Run the build and test commands of the configured tool and print a failures-only report, or nothing but a summary when all tests pass",
		Args:    cobra.NoArgs,
		RunE:    c.Run.Execute,
		PreRunE: loadConfig,
	}
	outputFlags(runCmd)
	runCmd.Flags().StringVarP(&flags.Tool, "tool", "t", "", "Tool preset to use ("+joinTools()+")")
	runCmd.Flags().BoolVar(&flags.Coverage, "coverage", false, "Collect code coverage")
	runCmd.Flags().DurationVar(&flags.Heartbeat, "heartbeat", 0, "Interval of the progress heartbeat (default 30s, from config)")
	runCmd.Flags().StringVarP(&flags.Database, "database", "d", "", "MySQL test database to create and pass as DB_DATABASE")
	runCmd.Flags().BoolVar(&flags.NoSave, "no-save", false, "Do not store the run for show, list and failures")
	rootCmd.AddCommand(runCmd)

	// Parse command
	parseCmd := &cobra.Command{
		Use:     "parse [FILE|-]",
		Short:   "Post-process an existing test report",
		Long:    "Read a go test -json stream or xUnit XML report from a file or stdin and print it like run does",
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.Parse.Execute,
		PreRunE: loadConfig,
	}
	outputFlags(parseCmd)
	parseCmd.Flags().StringVarP(&flags.Format, "format", "f", "", "Report format (gotest-json, xunit); defaults to the tool preset's")
	parseCmd.Flags().BoolVar(&flags.NoSave, "no-save", false, "Do not store the run for show, list and failures")
	rootCmd.AddCommand(parseCmd)

	// Show command
	showCmd := &cobra.Command{
		Use:     "show",
		Short:   "Print the last stored run again",
		Args:    cobra.NoArgs,
		RunE:    c.Show.Execute,
		PreRunE: loadConfig,
	}
	outputFlags(showCmd)
	rootCmd.AddCommand(showCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List the tests of the last stored run",
		Args:    cobra.NoArgs,
		RunE:    c.List.Execute,
		PreRunE: loadConfig,
	}
	listCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g. 'TestLogin*' or '*Cache*')")
	rootCmd.AddCommand(listCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:     "failures",
		Short:   "View the failures of the last stored run interactively",
		Args:    cobra.NoArgs,
		RunE:    c.Failures.Execute,
		PreRunE: loadConfig,
	}
	rootCmd.AddCommand(failuresCmd)
}
