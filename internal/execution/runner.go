package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"quietest/internal/config"
	"quietest/internal/domain"
	"quietest/internal/parser"
)

// Runner builds the project, runs its tests and collects the report
type Runner struct {
	config    *config.Config
	logger    *log.Logger
	heartbeat *Heartbeat
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config, logger *log.Logger) *Runner {
	return &Runner{
		config: cfg,
		logger: logger,
	}
}

// SetHeartbeat sets the heartbeat that runs while the tests execute
func (r *Runner) SetHeartbeat(heartbeat *Heartbeat) {
	r.heartbeat = heartbeat
}

// Run executes the build and test commands and parses the test report.
// A failing build is returned as *domain.BuildError. A failing test
// command is not an error as long as it produced a report; it only marks
// the raw run as failed.
func (r *Runner) Run(ctx context.Context) (domain.RawRun, error) {
	reportParser, err := parser.New(parser.Format(r.config.ReportFormat))
	if err != nil {
		return domain.RawRun{}, err
	}

	if err := r.build(ctx); err != nil {
		return domain.RawRun{}, err
	}

	stdout, stderr, testErr := r.runTests(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return domain.RawRun{}, ctxErr
	}

	report, err := r.openReport(stdout)
	if err != nil {
		return domain.RawRun{}, r.testFailure(err, testErr, stderr)
	}
	defer report.Close()

	raw, err := reportParser.Parse(report)
	if err != nil {
		return domain.RawRun{}, r.testFailure(err, testErr, stderr)
	}

	raw.Succeeded = raw.Succeeded && testErr == nil
	raw.CoverageFile = r.coverageFile(ctx)
	return raw, nil
}

func (r *Runner) build(ctx context.Context) error {
	if len(r.config.BuildCommand) == 0 {
		return nil
	}

	start := time.Now()
	cmd := r.command(ctx, r.config.BuildCommand)
	output, err := cmd.CombinedOutput()
	r.logger.Debug("build finished", "cmd", strings.Join(r.config.BuildCommand, " "), "duration", time.Since(start).Round(time.Millisecond), "err", err)
	if err != nil {
		return &domain.BuildError{
			Command: r.config.BuildCommand,
			Output:  string(output),
			Err:     err,
		}
	}
	return nil
}

func (r *Runner) runTests(ctx context.Context) (stdout, stderr []byte, err error) {
	if len(r.config.TestCommand) == 0 {
		return nil, nil, errors.New("no test command configured")
	}

	// Remove a stale report so an old run is never mistaken for this one
	if path := r.config.GetReportPath(); path != "" {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			r.logger.Warn("could not remove old report", "path", path, "err", err)
		}
	}

	if r.heartbeat != nil {
		stop := r.heartbeat.Start(ctx)
		defer stop()
	}

	var outBuf, errBuf bytes.Buffer
	cmd := r.command(ctx, r.config.TestCommand)
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	start := time.Now()
	err = cmd.Run()
	r.logger.Debug("tests finished", "cmd", strings.Join(r.config.TestCommand, " "), "duration", time.Since(start).Round(time.Millisecond), "err", err)
	return outBuf.Bytes(), errBuf.Bytes(), err
}

func (r *Runner) openReport(stdout []byte) (io.ReadCloser, error) {
	path := r.config.GetReportPath()
	if path == "" {
		return io.NopCloser(bytes.NewReader(stdout)), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open test report: %w", err)
	}
	return f, nil
}

// testFailure explains a missing or unreadable report, blaming the test
// command when it failed
func (r *Runner) testFailure(reportErr, testErr error, stderr []byte) error {
	if testErr == nil {
		return reportErr
	}
	if output := strings.TrimSpace(string(stderr)); output != "" {
		fmt.Fprintln(os.Stderr, output)
	}
	return fmt.Errorf("test command failed without a usable report (%v): %w", reportErr, testErr)
}

func (r *Runner) coverageFile(ctx context.Context) string {
	if !r.config.Coverage {
		return ""
	}
	if len(r.config.CoverageCommand) == 0 {
		return r.config.GetCoverageFile()
	}

	output, err := r.command(ctx, r.config.CoverageCommand).Output()
	if err != nil {
		r.logger.Warn("could not locate coverage data", "cmd", strings.Join(r.config.CoverageCommand, " "), "err", err)
		return ""
	}
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

func (r *Runner) command(ctx context.Context, args []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	// Set environment variables
	cmd.Env = os.Environ()
	if r.config.Database != "" {
		cmd.Env = append(cmd.Env, fmt.Sprintf("DB_DATABASE=%s", r.config.Database))
	}

	// Set working directory
	cmd.Dir = r.config.ProjectPath
	return cmd
}
