package report

import (
	"testing"

	"quietest/internal/domain"
)

func TestMatchName(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		input    string
		expected bool
	}{
		{name: "empty pattern matches", pattern: "", input: "testUser", expected: true},
		{name: "wildcard suffix", pattern: "*User", input: "testUser", expected: true},
		{name: "wildcard substring", pattern: "*Payment*", input: "testPaymentRefund", expected: true},
		{name: "simple contains", pattern: "Payment", input: "testPaymentRefund", expected: true},
		{name: "no match", pattern: "*NonExistent*", input: "testPayment", expected: false},
		{name: "subtest names", pattern: "TestParse/*", input: "TestParse/empty_input", expected: true},
		{name: "only stars", pattern: "**", input: "TestParse/empty", expected: true},
		{name: "parts in order", pattern: "*B*A*", input: "testAB", expected: false},
		{name: "question mark", pattern: "test?", input: "testA", expected: true},
		{name: "question mark no match", pattern: "test?", input: "testAB", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchName(tt.pattern, tt.input); got != tt.expected {
				t.Errorf("MatchName(%q, %q): expected %v, got %v", tt.pattern, tt.input, tt.expected, got)
			}
		})
	}
}

func TestFilterByName(t *testing.T) {
	run := CopyAll(mixedRun())

	t.Run("empty pattern returns everything", func(t *testing.T) {
		result := FilterByName(run, "")
		if result.CountTests() != run.CountTests() {
			t.Errorf("expected %d tests, got %d", run.CountTests(), result.CountTests())
		}
	})

	t.Run("matches test names and prunes", func(t *testing.T) {
		result := FilterByName(run, "testB")
		if len(result.Targets) != 1 || result.Targets[0].Name != "Mixed" {
			t.Fatalf("expected only target Mixed, got %+v", result.Targets)
		}
		if result.CountTests() != 1 {
			t.Errorf("expected 1 test, got %d", result.CountTests())
		}
	})

	t.Run("case name keeps all its tests", func(t *testing.T) {
		result := FilterByName(run, "Failing")
		if result.CountTests() != 4 {
			t.Errorf("expected 4 tests, got %d", result.CountTests())
		}
	})

	t.Run("no matches", func(t *testing.T) {
		result := FilterByName(run, "*nothing*")
		if len(result.Targets) != 0 {
			t.Errorf("expected no targets, got %d", len(result.Targets))
		}
		if result.Targets == nil {
			t.Error("expected empty, non-nil targets")
		}
	})

	t.Run("keeps verdict and coverage", func(t *testing.T) {
		result := FilterByName(domain.RunResult{Succeeded: true, CoverageFile: "c.out"}, "x")
		if !result.Succeeded || result.CoverageFile != "c.out" {
			t.Errorf("unexpected result %+v", result)
		}
	})
}
