// Package render serializes run results for the terminal or for machines.
package render

import (
	"fmt"
	"io"

	"quietest/internal/domain"
)

// Format selects how a run result is rendered
type Format int

const (
	// FormatDump is a nested, human-readable dump of the tree
	FormatDump Format = iota
	// FormatJSON is indented JSON
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatDump:
		return "dump"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// FormatFor returns FormatJSON when asJSON is set, FormatDump otherwise
func FormatFor(asJSON bool) Format {
	if asJSON {
		return FormatJSON
	}
	return FormatDump
}

// Render writes run to w in the given format. Any failure, including a
// failing writer, is reported as a *domain.SerializationError.
func Render(w io.Writer, run domain.RunResult, format Format) error {
	var err error
	switch format {
	case FormatJSON:
		err = writeJSON(w, run)
	case FormatDump:
		err = writeDump(w, run)
	default:
		err = fmt.Errorf("unsupported format")
	}

	if err != nil {
		return &domain.SerializationError{Format: format.String(), Err: err}
	}
	return nil
}
