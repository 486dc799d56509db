package cli

import (
	"errors"

	"quietest/internal/domain"
)

// Process exit codes
const (
	ExitSuccess       = 0
	ExitTestsFailed   = 1
	ExitBuildFailed   = 2
	ExitSerialization = 3
	ExitRuntimeError  = 4
)

// ExitCode maps an error returned by a command to the process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var buildErr *domain.BuildError
	var serializationErr *domain.SerializationError
	switch {
	case errors.Is(err, domain.ErrTestsFailed):
		return ExitTestsFailed
	case errors.As(err, &buildErr):
		return ExitBuildFailed
	case errors.As(err, &serializationErr):
		return ExitSerialization
	default:
		return ExitRuntimeError
	}
}
