package domain

// RawStatus is the outcome as reported by a test collector.
// The set of values is open-ended: collectors may report labels this
// package has never seen, so it is kept as a plain string.
type RawStatus string

const (
	RawSucceeded RawStatus = "succeeded"
	RawSkipped   RawStatus = "skipped"
	RawFailed    RawStatus = "failed"
)

// RawRun is a test run in collector form, before normalization
type RawRun struct {
	Succeeded    bool
	Targets      []RawTarget
	CoverageFile string
}

// RawTarget is a test module as reported by the collector
type RawTarget struct {
	Name  string
	Cases []RawCase
}

// RawCase is a test suite as reported by the collector
type RawCase struct {
	Name  string
	Tests []RawTest
}

// RawTest is a single test as reported by the collector
type RawTest struct {
	Name     string
	Status   RawStatus
	Duration float64 // seconds
}

// CountCases returns the number of test cases across all targets
func (r RawRun) CountCases() int {
	total := 0
	for _, target := range r.Targets {
		total += len(target.Cases)
	}
	return total
}
