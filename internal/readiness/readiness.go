// Package readiness evaluates whether subjects can be started given the
// current progress, and derives the dashboard and catalog views from it.
package readiness

import "github.com/alexanderramin/syllabus/internal/domain"

// Lookup returns the progress of a subject. Unknown ids read as empty.
type Lookup interface {
	Get(id string) domain.Progress
}

// Calculate derives readiness from hard prerequisites only. Corequisites
// and soft prerequisites never affect it; ids that resolve to no subject
// read as empty.
func Calculate(s *domain.Subject, progress Lookup) domain.Readiness {
	if len(s.Prereq) == 0 {
		return domain.ReadinessReady
	}
	all, some := true, false
	for _, id := range s.Prereq {
		if progress.Get(id) == domain.ProgressComplete {
			some = true
		} else {
			all = false
		}
	}
	switch {
	case all:
		return domain.ReadinessReady
	case some:
		return domain.ReadinessPartial
	default:
		return domain.ReadinessLocked
	}
}

// TierProgress counts the subjects of t that are complete.
func TierProgress(t *domain.Tier, progress Lookup) (completed, total int) {
	for _, s := range t.Subjects {
		if progress.Get(s.ID) == domain.ProgressComplete {
			completed++
		}
	}
	return completed, len(t.Subjects)
}
