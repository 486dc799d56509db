package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// StatusKind enumerates the closed set of test outcomes
type StatusKind int

const (
	// KindUnknown is a status the collector reported but no alias matched
	KindUnknown StatusKind = iota
	// KindSucceeded is a passed test
	KindSucceeded
	// KindSkipped is a test that did not run
	KindSkipped
	// KindFailed is a failed test
	KindFailed
)

// unknownPrefix prefixes the raw label of an Unknown status in its text form
const unknownPrefix = "unknown:"

// Status is the normalized outcome of a single test.
// The zero value is Unknown with an empty raw label.
type Status struct {
	kind StatusKind
	raw  string
}

// The known statuses. Unknown ones are built with StatusUnknown.
var (
	StatusSucceeded = Status{kind: KindSucceeded}
	StatusSkipped   = Status{kind: KindSkipped}
	StatusFailed    = Status{kind: KindFailed}
)

// StatusUnknown returns an Unknown status carrying the unrecognized label
func StatusUnknown(raw string) Status {
	return Status{kind: KindUnknown, raw: raw}
}

// Kind returns the variant of the status
func (s Status) Kind() StatusKind {
	return s.kind
}

// RawLabel returns the original label of an Unknown status, empty otherwise
func (s Status) RawLabel() string {
	if s.kind != KindUnknown {
		return ""
	}
	return s.raw
}

// IsFailed reports whether the status is Failed
func (s Status) IsFailed() bool {
	return s.kind == KindFailed
}

// String returns the symbolic label used in JSON output
func (s Status) String() string {
	switch s.kind {
	case KindSucceeded:
		return "passed"
	case KindSkipped:
		return "skipped"
	case KindFailed:
		return "failed"
	default:
		return unknownPrefix + s.raw
	}
}

// Glyph returns a short visual marker for terminal output
func (s Status) Glyph() string {
	switch s.kind {
	case KindSucceeded:
		return "✅"
	case KindSkipped:
		return "⏭️"
	case KindFailed:
		return "❌"
	default:
		return "❔"
	}
}

// Raw converts the status back to the collector representation.
// Normalizing the result yields the same status again.
func (s Status) Raw() RawStatus {
	switch s.kind {
	case KindSucceeded:
		return RawSucceeded
	case KindSkipped:
		return RawSkipped
	case KindFailed:
		return RawFailed
	default:
		return RawStatus(s.raw)
	}
}

// MarshalJSON encodes the status as its symbolic label. The raw label of
// an Unknown status is written without HTML escaping.
func (s Status) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s.String()); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON decodes a label produced by MarshalJSON
func (s *Status) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return fmt.Errorf("status must be a string: %w", err)
	}

	parsed, err := ParseStatus(label)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStatus parses a symbolic label as returned by Status.String
func ParseStatus(label string) (Status, error) {
	switch label {
	case "passed":
		return StatusSucceeded, nil
	case "skipped":
		return StatusSkipped, nil
	case "failed":
		return StatusFailed, nil
	}
	if raw, ok := strings.CutPrefix(label, unknownPrefix); ok {
		return StatusUnknown(raw), nil
	}
	return Status{}, fmt.Errorf("unrecognized status label %q", label)
}
