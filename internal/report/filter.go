package report

import (
	"path/filepath"
	"strings"

	"quietest/internal/domain"
)

// FilterByName keeps the tests whose name, or whose case name, matches the
// pattern. Supports wildcards like "*Payment*" or "test?"; a pattern without
// wildcards matches as a substring. Empty containers are dropped.
func FilterByName(run domain.RunResult, pattern string) domain.RunResult {
	if pattern == "" {
		return run
	}

	targets := make([]domain.Target, 0)
	for _, target := range run.Targets {
		cases := make([]domain.Case, 0)
		for _, c := range target.Cases {
			var tests []domain.Test
			if MatchName(pattern, c.Name) {
				tests = append(tests, c.Tests...)
			} else {
				for _, test := range c.Tests {
					if MatchName(pattern, test.Name) {
						tests = append(tests, test)
					}
				}
			}
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
		Succeeded:    run.Succeeded,
		Targets:      targets,
		CoverageFile: run.CoverageFile,
	}
}

// MatchName reports whether name matches the wildcard pattern
func MatchName(pattern, name string) bool {
	if pattern == "" {
		return true
	}

	// filepath.Match supports * and ? but stops at path separators,
	// which subtest names contain
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if strings.Contains(pattern, "*") {
		// Parts must appear in order; a pattern of only stars matches everything
		rest := name
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			idx := strings.Index(rest, part)
			if idx < 0 {
				return false
			}
			rest = rest[idx+len(part):]
		}
		return true
	}

	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}
	return false
}
