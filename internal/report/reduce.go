package report

import "quietest/internal/domain"

// CopyAll converts a raw run into a structurally identical result with every
// status normalized. Nothing is removed.
func CopyAll(run domain.RawRun) domain.RunResult {
	targets := make([]domain.Target, 0, len(run.Targets))
	for _, target := range run.Targets {
		cases := make([]domain.Case, 0, len(target.Cases))
		for _, c := range target.Cases {
			tests := make([]domain.Test, 0, len(c.Tests))
			for _, test := range c.Tests {
				tests = append(tests, domain.Test{
					Name:     test.Name,
					Status:   Normalize(test.Status),
					Duration: test.Duration,
				})
			}
			cases = append(cases, domain.Case{Name: c.Name, Tests: tests})
		}
		targets = append(targets, domain.Target{Name: target.Name, Cases: cases})
	}

	return domain.RunResult{
		Succeeded:    run.Succeeded,
		Targets:      targets,
		CoverageFile: run.CoverageFile,
	}
}

// ReduceToFailures keeps only the failing branches of a run.
//
// Targets and cases are selected by the presence of a failed test, then each
// kept case lists only its failed tests. Containers left without children are
// dropped and the relative order of survivors is preserved. Excluded tests
// stay in the output: exclusion only changes the verdict computed by
// Succeeded, never what is displayed.
func ReduceToFailures(run domain.RawRun, excluded Exclusions) domain.RunResult {
	targets := make([]domain.Target, 0)
	for _, target := range run.Targets {
		if !targetHasFailure(target) {
			continue
		}

		cases := make([]domain.Case, 0)
		for _, c := range target.Cases {
			if !caseHasFailure(c) {
				continue
			}
			tests := failedTests(c)
			if len(tests) == 0 {
				continue
			}
			cases = append(cases, domain.Case{Name: c.Name, Tests: tests})
		}

		if len(cases) == 0 {
			continue
		}
		targets = append(targets, domain.Target{Name: target.Name, Cases: cases})
	}

	return domain.RunResult{
		Succeeded:    false,
		Targets:      targets,
		CoverageFile: run.CoverageFile,
	}
}

func targetHasFailure(target domain.RawTarget) bool {
	for _, c := range target.Cases {
		if caseHasFailure(c) {
			return true
		}
	}
	return false
}

func caseHasFailure(c domain.RawCase) bool {
	for _, test := range c.Tests {
		if isFailed(test) {
			return true
		}
	}
	return false
}

// failedTests re-emits the failed tests of a case with their name and duration
func failedTests(c domain.RawCase) []domain.Test {
	var tests []domain.Test
	for _, test := range c.Tests {
		if !isFailed(test) {
			continue
		}
		tests = append(tests, domain.Test{
			Name:     test.Name,
			Status:   domain.StatusFailed,
			Duration: test.Duration,
		})
	}
	return tests
}
