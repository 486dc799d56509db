package domain

// RunResult is the normalized result of one test invocation
type RunResult struct {
	Succeeded    bool     `json:"succeeded"`
	Targets      []Target `json:"targets"`
	CoverageFile string   `json:"coverageFile,omitempty"`
}

// Target groups the test cases of one test module
type Target struct {
	Name  string `json:"name"`
	Cases []Case `json:"cases"`
}

// Case groups the tests of one test suite or class
type Case struct {
	Name  string `json:"name"`
	Tests []Test `json:"tests"`
}

// Test is a single executed test
type Test struct {
	Name     string  `json:"name"`
	Status   Status  `json:"status"`
	Duration float64 `json:"duration"` // seconds
}

// Raw converts the result back to collector form so it can be reduced again
func (r RunResult) Raw() RawRun {
	targets := make([]RawTarget, 0, len(r.Targets))
	for _, target := range r.Targets {
		cases := make([]RawCase, 0, len(target.Cases))
		for _, c := range target.Cases {
			tests := make([]RawTest, 0, len(c.Tests))
			for _, test := range c.Tests {
				tests = append(tests, RawTest{
					Name:     test.Name,
					Status:   test.Status.Raw(),
					Duration: test.Duration,
				})
			}
			cases = append(cases, RawCase{Name: c.Name, Tests: tests})
		}
		targets = append(targets, RawTarget{Name: target.Name, Cases: cases})
	}

	return RawRun{
		Succeeded:    r.Succeeded,
		Targets:      targets,
		CoverageFile: r.CoverageFile,
	}
}

// CountCases returns the number of test cases across all targets
func (r RunResult) CountCases() int {
	total := 0
	for _, target := range r.Targets {
		total += len(target.Cases)
	}
	return total
}

// CountTests returns the number of tests across all targets
func (r RunResult) CountTests() int {
	total := 0
	for _, target := range r.Targets {
		for _, c := range target.Cases {
			total += len(c.Tests)
		}
	}
	return total
}
