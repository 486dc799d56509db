package ui

import "quietest/internal/domain"

// Viewer displays a run result interactively
type Viewer interface {
	View(run domain.RunResult) error
}
