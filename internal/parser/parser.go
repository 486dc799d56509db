package parser

import (
	"errors"
	"fmt"
	"io"

	"quietest/internal/domain"
)

// Format names a test report format
type Format string

const (
	FormatGoTestJSON Format = "gotest-json"
	FormatXUnit      Format = "xunit"
)

// ErrNoResults is returned when a report contains no test results at all
var ErrNoResults = errors.New("no test results found in report")

// Parser turns a test report into a raw run tree
type Parser interface {
	Parse(r io.Reader) (domain.RawRun, error)
}

// New returns the parser for the named format
func New(format Format) (Parser, error) {
	switch format {
	case FormatGoTestJSON:
		return NewGoTestParser(), nil
	case FormatXUnit:
		return NewXUnitParser(), nil
	default:
		return nil, fmt.Errorf("unknown report format %q (expected %s or %s)", format, FormatGoTestJSON, FormatXUnit)
	}
}
