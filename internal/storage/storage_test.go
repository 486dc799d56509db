package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quietest/internal/config"
	"quietest/internal/domain"
)

func newTestStorage(t *testing.T) *JSONStorage {
	t.Helper()
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	return NewJSONStorage(cfg)
}

func TestJSONStorage_SaveLoad(t *testing.T) {
	st := newTestStorage(t)
	run := domain.RunResult{
		Succeeded: false,
		Targets: []domain.Target{
			{Name: "T1", Cases: []domain.Case{
				{Name: "C1", Tests: []domain.Test{
					{Name: "testFail", Status: domain.StatusFailed, Duration: 0.1},
					{Name: "testOdd", Status: domain.StatusUnknown("xyz"), Duration: 2},
				}},
			}},
		},
		CoverageFile: "/tmp/cov.json",
	}

	require.NoError(t, st.Save(run))
	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, run, loaded)

	_, err = os.Stat(st.cfg.GetOutputPath() + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file left behind")
}

func TestJSONStorage_EmptyRun(t *testing.T) {
	st := newTestStorage(t)
	require.NoError(t, st.Save(domain.RunResult{Succeeded: true}))

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.True(t, loaded.Succeeded)
	assert.Empty(t, loaded.Targets)
}

func TestJSONStorage_LoadMissing(t *testing.T) {
	_, err := newTestStorage(t).Load()
	assert.ErrorIs(t, err, ErrNoStoredRun)
}

func TestJSONStorage_LoadCorrupt(t *testing.T) {
	st := newTestStorage(t)
	require.NoError(t, st.Save(domain.RunResult{}))
	require.NoError(t, os.WriteFile(st.cfg.GetOutputPath(), []byte(`{"targets": [{"cases": [{"tests": [{"status": "bogus"}]}]}]}`), 0644))

	_, err := st.Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoStoredRun)
}

func TestJSONStorage_SaveRenameFailure(t *testing.T) {
	st := newTestStorage(t)

	// A non-empty directory at the output path makes the rename fail
	path := st.cfg.GetOutputPath()
	require.NoError(t, os.MkdirAll(filepath.Join(path, "blocker"), 0755))

	err := st.Save(domain.RunResult{Succeeded: true})
	require.Error(t, err)

	_, statErr := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(statErr), "temp file left behind")
}
