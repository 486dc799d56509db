package storage

import (
	"errors"

	"quietest/internal/config"
	"quietest/internal/domain"
)

// ErrNoStoredRun is returned by Load when no run has been saved yet
var ErrNoStoredRun = errors.New("no stored test run found, run `quietest run` first")

// Storage persists and loads the last full test run (e.g. for the show and failures commands).
type Storage interface {
	Save(run domain.RunResult) error
	Load() (domain.RunResult, error)
}

// JSONStorage stores the run in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
