package cli

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"quietest/internal/domain"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "tests failed", err: domain.ErrTestsFailed, want: ExitTestsFailed},
		{name: "wrapped tests failed", err: fmt.Errorf("run: %w", domain.ErrTestsFailed), want: ExitTestsFailed},
		{name: "build failed", err: &domain.BuildError{Command: []string{"go", "build"}, Err: errors.New("exit status 1")}, want: ExitBuildFailed},
		{name: "serialization", err: fmt.Errorf("show: %w", &domain.SerializationError{Format: "json", Err: errors.New("broken pipe")}), want: ExitSerialization},
		{name: "other", err: errors.New("unknown tool"), want: ExitRuntimeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestFlags_ToConfigFlags(t *testing.T) {
	flags := Flags{
		ShowAll:   true,
		JSON:      true,
		Exclude:   []string{"testFlaky"},
		Tool:      "swift",
		Heartbeat: time.Minute,
		Database:  "testing",
	}

	cfgFlags := flags.ToConfigFlags()
	if !cfgFlags.ShowAll || !cfgFlags.JSON {
		t.Errorf("expected output flags to be copied, got %+v", cfgFlags)
	}
	if cfgFlags.Tool != "swift" || cfgFlags.Heartbeat != time.Minute || cfgFlags.Database != "testing" {
		t.Errorf("expected run flags to be copied, got %+v", cfgFlags)
	}

	// The copy must not alias the cobra-owned slice
	flags.Exclude[0] = "changed"
	if cfgFlags.Exclude[0] != "testFlaky" {
		t.Errorf("expected testFlaky, got %s", cfgFlags.Exclude[0])
	}
}
