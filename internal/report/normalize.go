// Package report reduces test run trees for display and decides the verdict.
package report

import (
	"strings"

	"quietest/internal/domain"
)

// Normalize maps a collector status onto the closed status set.
// Labels it does not recognize become Unknown and keep their original text.
func Normalize(raw domain.RawStatus) domain.Status {
	switch strings.ToLower(strings.TrimSpace(string(raw))) {
	case "succeeded", "success", "passed", "pass", "ok":
		return domain.StatusSucceeded
	case "skipped", "skip":
		return domain.StatusSkipped
	case "failed", "fail", "failure":
		return domain.StatusFailed
	default:
		return domain.StatusUnknown(string(raw))
	}
}

func isFailed(test domain.RawTest) bool {
	return Normalize(test.Status).IsFailed()
}
