package commands

import (
	"io"

	"github.com/charmbracelet/log"

	"quietest/internal/config"
	"quietest/internal/domain"
	"quietest/internal/render"
	"quietest/internal/report"
	"quietest/internal/storage"
	"quietest/internal/ui"
)

// Processor turns a raw run into operator output and a verdict
type Processor struct {
	config  *config.Config
	storage storage.Storage
	logger  *log.Logger
	out     io.Writer
	errOut  io.Writer
}

// NewProcessor creates a new Processor. Rendered results go to out,
// messages that must not mix with JSON output go to errOut.
func NewProcessor(cfg *config.Config, st storage.Storage, logger *log.Logger, out, errOut io.Writer) *Processor {
	return &Processor{
		config:  cfg,
		storage: st,
		logger:  logger,
		out:     out,
		errOut:  errOut,
	}
}

// Process renders raw according to the output flags and returns
// domain.ErrTestsFailed when a failure that is not excluded remains.
// When save is set the full run is stored for later commands.
func (p *Processor) Process(raw domain.RawRun, save bool) error {
	full := report.CopyAll(raw)
	if save && !p.config.Flags.NoSave {
		if err := p.storage.Save(full); err != nil {
			p.logger.Warn("could not store run", "err", err)
		}
	}

	excluded := report.NewExclusions(p.config.Exclude...)
	format := render.FormatFor(p.config.Flags.JSON)

	if !report.Succeeded(raw, excluded) {
		result := report.ReduceToFailures(raw, excluded)
		if p.config.Flags.ShowAll {
			result = full
		}
		if err := render.Render(p.out, result, format); err != nil {
			return err
		}
		return domain.ErrTestsFailed
	}

	failures := report.Failures(raw)
	switch {
	case len(failures) > 0:
		p.logger.Info("ignoring excluded failures", "count", len(failures))
	case !raw.Succeeded:
		p.logger.Warn("test run reported failure but no test failed")
	}

	if p.config.Flags.ShowAll {
		if err := render.Render(p.out, full, format); err != nil {
			return err
		}
	}

	successOut := p.out
	if p.config.Flags.JSON {
		successOut = p.errOut
	}
	ui.PrintSuccess(successOut, full)
	return nil
}
