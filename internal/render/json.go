package render

import (
	"encoding/json"
	"io"

	"quietest/internal/domain"
)

func writeJSON(w io.Writer, run domain.RunResult) error {
	// Nil slices would encode as null
	if run.Targets == nil {
		run.Targets = []domain.Target{}
	}

	// Test names like "test<Int>&x" must come out verbatim
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}
