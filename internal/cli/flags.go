package cli

import (
	"time"

	"quietest/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	ProjectPath string

	ShowAll   bool
	JSON      bool
	Exclude   []string
	Tool      string
	Coverage  bool
	Heartbeat time.Duration
	Database  string
	NoSave    bool
	Verbose   bool
	Filter    string
	Format    string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ShowAll:   f.ShowAll,
		JSON:      f.JSON,
		Exclude:   append([]string(nil), f.Exclude...),
		Tool:      f.Tool,
		Coverage:  f.Coverage,
		Heartbeat: f.Heartbeat,
		Database:  f.Database,
		NoSave:    f.NoSave,
		Verbose:   f.Verbose,
		Filter:    f.Filter,
		Format:    f.Format,
	}
}
