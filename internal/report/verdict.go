package report

import "quietest/internal/domain"

// Exclusions is a set of test names whose failures do not count against a run
type Exclusions map[string]struct{}

// NewExclusions builds an exclusion set, ignoring empty names
func NewExclusions(names ...string) Exclusions {
	set := make(Exclusions, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}

// Contains reports whether name is excluded. Matching is by exact name.
func (e Exclusions) Contains(name string) bool {
	_, ok := e[name]
	return ok
}

// Entry locates a test within the run tree
type Entry struct {
	Target string
	Case   string
	Test   domain.Test
}

// Failures flattens every failed test of the run in tree order
func Failures(run domain.RawRun) []Entry {
	return Flatten(ReduceToFailures(run, nil))
}

// Flatten lists every test of a result with its target and case names
func Flatten(run domain.RunResult) []Entry {
	var flat []Entry
	for _, target := range run.Targets {
		for _, c := range target.Cases {
			for _, test := range c.Tests {
				flat = append(flat, Entry{Target: target.Name, Case: c.Name, Test: test})
			}
		}
	}
	return flat
}

// Succeeded reports whether every failing test of the run is excluded.
// A run without failing tests always succeeds, whatever its raw verdict.
func Succeeded(run domain.RawRun, excluded Exclusions) bool {
	for _, failure := range Failures(run) {
		if !excluded.Contains(failure.Test.Name) {
			return false
		}
	}
	return true
}
