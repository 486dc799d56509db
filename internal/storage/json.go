package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"quietest/internal/domain"
)

// Save writes the run to the configured JSON output file.
func (s *JSONStorage) Save(run domain.RunResult) error {
	if run.Targets == nil {
		run.Targets = []domain.Target{}
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}

	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// Write through a temp file so a crash never leaves a truncated run behind
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// Load reads the last run from the configured JSON output file.
func (s *JSONStorage) Load() (domain.RunResult, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.RunResult{}, ErrNoStoredRun
	}
	if err != nil {
		return domain.RunResult{}, fmt.Errorf("read stored run: %w", err)
	}

	var run domain.RunResult
	if err := json.Unmarshal(data, &run); err != nil {
		return domain.RunResult{}, fmt.Errorf("parse stored run %s: %w", path, err)
	}
	return run, nil
}
