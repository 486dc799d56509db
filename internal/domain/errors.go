package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTestsFailed is returned after rendering when the run did not pass.
// The rendered output already lists the failing tests.
var ErrTestsFailed = errors.New("tests failed")

// BuildError reports that the build step failed and no tests were run
type BuildError struct {
	Command []string
	Output  string
	Err     error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build failed: %s: %v", strings.Join(e.Command, " "), e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// SerializationError reports that a result tree could not be rendered
type SerializationError struct {
	Format string
	Err    error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Format, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}
