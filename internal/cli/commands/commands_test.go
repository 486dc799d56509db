package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quietest/internal/config"
	"quietest/internal/domain"
	"quietest/internal/execution"
	"quietest/internal/storage"
)

func init() {
	color.NoColor = true
}

type memoryStorage struct {
	run   *domain.RunResult
	saves int
}

func (m *memoryStorage) Save(run domain.RunResult) error {
	m.run = &run
	m.saves++
	return nil
}

func (m *memoryStorage) Load() (domain.RunResult, error) {
	if m.run == nil {
		return domain.RunResult{}, storage.ErrNoStoredRun
	}
	return *m.run, nil
}

type fakeRunner struct {
	raw       domain.RawRun
	err       error
	heartbeat *execution.Heartbeat
}

func (f *fakeRunner) SetHeartbeat(heartbeat *execution.Heartbeat) { f.heartbeat = heartbeat }

func (f *fakeRunner) Run(ctx context.Context) (domain.RawRun, error) { return f.raw, f.err }

type fakeDatabase struct {
	names []string
	err   error
}

func (f *fakeDatabase) EnsureDatabase(ctx context.Context, name string) (bool, error) {
	f.names = append(f.names, name)
	return true, f.err
}

type recordingViewer struct {
	viewed []domain.RunResult
}

func (r *recordingViewer) View(run domain.RunResult) error {
	r.viewed = append(r.viewed, run)
	return nil
}

func mixedRun() domain.RawRun {
	return domain.RawRun{
		Succeeded: false,
		Targets: []domain.RawTarget{
			{Name: "T1", Cases: []domain.RawCase{
				{Name: "C1", Tests: []domain.RawTest{
					{Name: "testPass", Status: domain.RawSucceeded, Duration: 0.1},
					{Name: "testFail", Status: domain.RawFailed, Duration: 0.2},
				}},
			}},
			{Name: "T2", Cases: []domain.RawCase{
				{Name: "C2", Tests: []domain.RawTest{
					{Name: "testOther", Status: domain.RawSucceeded, Duration: 0.3},
				}},
			}},
		},
	}
}

func passingRun() domain.RawRun {
	return domain.RawRun{
		Succeeded: true,
		Targets: []domain.RawTarget{
			{Name: "T1", Cases: []domain.RawCase{
				{Name: "C1", Tests: []domain.RawTest{{Name: "test1", Status: domain.RawSucceeded, Duration: 0.1}}},
				{Name: "C2", Tests: []domain.RawTest{{Name: "test2", Status: domain.RawSkipped}}},
			}},
		},
	}
}

type harness struct {
	cfg       *config.Config
	storage   *memoryStorage
	out       *bytes.Buffer
	errOut    *bytes.Buffer
	processor *Processor
}

func newHarness() *harness {
	h := &harness{
		cfg:     config.New(),
		storage: &memoryStorage{},
		out:     &bytes.Buffer{},
		errOut:  &bytes.Buffer{},
	}
	h.processor = NewProcessor(h.cfg, h.storage, log.New(io.Discard), h.out, h.errOut)
	return h
}

func TestProcessor_FailuresOnly(t *testing.T) {
	h := newHarness()

	err := h.processor.Process(mixedRun(), true)
	assert.ErrorIs(t, err, domain.ErrTestsFailed)

	out := h.out.String()
	assert.Contains(t, out, "▿ RunResult")
	assert.Contains(t, out, `"testFail"`)
	assert.NotContains(t, out, "testPass")
	assert.NotContains(t, out, "T2")
	assert.NotContains(t, out, "with success")

	// The stored run is the full tree
	require.Equal(t, 1, h.storage.saves)
	assert.Equal(t, 3, h.storage.run.CountTests())
}

func TestProcessor_FailuresShowAllJSON(t *testing.T) {
	h := newHarness()
	h.cfg.Flags.ShowAll = true
	h.cfg.Flags.JSON = true

	err := h.processor.Process(mixedRun(), true)
	assert.ErrorIs(t, err, domain.ErrTestsFailed)

	var rendered domain.RunResult
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &rendered))
	assert.False(t, rendered.Succeeded)
	assert.Equal(t, 3, rendered.CountTests())
}

func TestProcessor_ExcludedFailure(t *testing.T) {
	h := newHarness()
	h.cfg.Exclude = []string{"testFail"}

	err := h.processor.Process(mixedRun(), true)
	assert.NoError(t, err)
	assert.Equal(t, "✓ Ran 2 test cases with success\n", h.out.String())
}

func TestProcessor_Success(t *testing.T) {
	h := newHarness()

	err := h.processor.Process(passingRun(), true)
	assert.NoError(t, err)
	assert.Equal(t, "✓ Ran 2 test cases with success\n", h.out.String())
	assert.Empty(t, h.errOut.String())
}

func TestProcessor_SuccessShowAllJSON(t *testing.T) {
	h := newHarness()
	h.cfg.Flags.ShowAll = true
	h.cfg.Flags.JSON = true

	err := h.processor.Process(passingRun(), true)
	assert.NoError(t, err)

	// stdout stays valid JSON, the summary goes to stderr
	var rendered domain.RunResult
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &rendered))
	assert.True(t, rendered.Succeeded)
	assert.Equal(t, "✓ Ran 2 test cases with success\n", h.errOut.String())
}

func TestProcessor_NoSave(t *testing.T) {
	h := newHarness()
	h.cfg.Flags.NoSave = true

	_ = h.processor.Process(passingRun(), true)
	assert.Zero(t, h.storage.saves)

	h.cfg.Flags.NoSave = false
	_ = h.processor.Process(passingRun(), false)
	assert.Zero(t, h.storage.saves)
}

func TestProcessor_RawFailureWithoutFailingTests(t *testing.T) {
	h := newHarness()
	raw := passingRun()
	raw.Succeeded = false

	assert.NoError(t, h.processor.Process(raw, false))
}

func TestRunCommand_Execute(t *testing.T) {
	t.Run("tests failed", func(t *testing.T) {
		h := newHarness()
		runner := &fakeRunner{raw: mixedRun()}
		db := &fakeDatabase{}
		h.cfg.Database = "testing"

		rc := NewRunCommand(h.cfg, runner, db, h.processor, log.New(io.Discard), h.errOut)
		err := rc.Execute(&cobra.Command{}, nil)

		assert.ErrorIs(t, err, domain.ErrTestsFailed)
		assert.Equal(t, []string{"testing"}, db.names)
		assert.NotNil(t, runner.heartbeat)
		assert.Contains(t, h.out.String(), "testFail")
	})

	t.Run("build failed", func(t *testing.T) {
		h := newHarness()
		buildErr := &domain.BuildError{Command: []string{"go", "build"}, Output: "main.go:1: syntax error\n", Err: errors.New("exit status 1")}
		rc := NewRunCommand(h.cfg, &fakeRunner{err: buildErr}, &fakeDatabase{}, h.processor, log.New(io.Discard), h.errOut)

		err := rc.Execute(&cobra.Command{}, nil)

		var target *domain.BuildError
		assert.ErrorAs(t, err, &target)
		assert.Contains(t, h.errOut.String(), "main.go:1: syntax error")
		assert.Empty(t, h.out.String())
		assert.Zero(t, h.storage.saves)
	})

	t.Run("database failure", func(t *testing.T) {
		h := newHarness()
		h.cfg.Database = "testing"
		runner := &fakeRunner{raw: passingRun()}
		rc := NewRunCommand(h.cfg, runner, &fakeDatabase{err: errors.New("connection refused")}, h.processor, log.New(io.Discard), h.errOut)

		err := rc.Execute(&cobra.Command{}, nil)
		assert.ErrorContains(t, err, "database setup failed")
		assert.Nil(t, runner.heartbeat)
	})
}

func TestParseCommand_Execute(t *testing.T) {
	report := `{"Action":"run","Package":"example.com/app","Test":"TestOK"}
{"Action":"pass","Package":"example.com/app","Test":"TestOK","Elapsed":0.01}
{"Action":"pass","Package":"example.com/app","Elapsed":0.02}
`

	t.Run("stdin", func(t *testing.T) {
		h := newHarness()
		h.cfg.Flags.Format = "gotest-json"
		pc := NewParseCommand(h.cfg, h.processor, bytes.NewBufferString(report))

		require.NoError(t, pc.Execute(&cobra.Command{}, []string{"-"}))
		assert.Equal(t, "✓ Ran 1 test cases with success\n", h.out.String())
		assert.Equal(t, 1, h.storage.saves)
	})

	t.Run("file", func(t *testing.T) {
		h := newHarness()
		h.cfg.ReportFormat = "gotest-json"
		path := filepath.Join(t.TempDir(), "report.json")
		require.NoError(t, os.WriteFile(path, []byte(report), 0644))

		pc := NewParseCommand(h.cfg, h.processor, bytes.NewBuffer(nil))
		require.NoError(t, pc.Execute(&cobra.Command{}, []string{path}))
		assert.Contains(t, h.out.String(), "with success")
	})

	t.Run("unknown format", func(t *testing.T) {
		h := newHarness()
		h.cfg.Flags.Format = "tap"
		pc := NewParseCommand(h.cfg, h.processor, bytes.NewBuffer(nil))

		assert.ErrorContains(t, pc.Execute(&cobra.Command{}, nil), "unknown report format")
	})
}

func TestShowCommand_Execute(t *testing.T) {
	h := newHarness()
	sc := NewShowCommand(h.storage, h.processor)

	assert.ErrorIs(t, sc.Execute(&cobra.Command{}, nil), storage.ErrNoStoredRun)

	require.ErrorIs(t, h.processor.Process(mixedRun(), true), domain.ErrTestsFailed)
	first := h.out.String()
	h.out.Reset()

	assert.ErrorIs(t, sc.Execute(&cobra.Command{}, nil), domain.ErrTestsFailed)
	assert.Equal(t, first, h.out.String())
	assert.Equal(t, 1, h.storage.saves)
}

func TestListCommand_Execute(t *testing.T) {
	h := newHarness()
	stored := &memoryStorage{}
	require.NoError(t, stored.Save(domain.RunResult{Targets: []domain.Target{
		{Name: "T1", Cases: []domain.Case{{Name: "C1", Tests: []domain.Test{
			{Name: "testLogin", Status: domain.StatusSucceeded},
			{Name: "testCache", Status: domain.StatusFailed},
		}}}},
	}}))

	h.cfg.Flags.Filter = "*Login*"
	lc := NewListCommand(h.cfg, stored, h.out)
	require.NoError(t, lc.Execute(&cobra.Command{}, nil))
	assert.Contains(t, h.out.String(), "Found 1 test(s) in 1 case(s):")
	assert.Contains(t, h.out.String(), "testLogin")
	assert.NotContains(t, h.out.String(), "testCache")

	h.out.Reset()
	h.cfg.Flags.Filter = "nothing*matches"
	require.NoError(t, lc.Execute(&cobra.Command{}, nil))
	assert.Equal(t, "No tests found\n", h.out.String())
}

func TestFailuresCommand_Execute(t *testing.T) {
	st := &memoryStorage{}
	viewer := &recordingViewer{}
	fc := NewFailuresCommand(st, viewer)

	assert.ErrorIs(t, fc.Execute(&cobra.Command{}, nil), storage.ErrNoStoredRun)

	require.NoError(t, st.Save(domain.RunResult{Succeeded: true}))
	require.NoError(t, fc.Execute(&cobra.Command{}, nil))
	assert.Len(t, viewer.viewed, 1)
}
