package domain

import "fmt"

// Progress is the completion state of a subject.
type Progress string

const (
	ProgressEmpty    Progress = "empty"
	ProgressPartial  Progress = "partial"
	ProgressComplete Progress = "complete"
)

// Valid reports whether p is one of the three known states.
func (p Progress) Valid() bool {
	switch p {
	case ProgressEmpty, ProgressPartial, ProgressComplete:
		return true
	}
	return false
}

// Next returns the state after p in the cycle empty → partial → complete → empty.
// Unknown values are treated as empty.
func (p Progress) Next() Progress {
	switch p {
	case ProgressPartial:
		return ProgressComplete
	case ProgressComplete:
		return ProgressEmpty
	default:
		return ProgressPartial
	}
}

// ParseProgress converts user input into a Progress value.
func ParseProgress(s string) (Progress, error) {
	p := Progress(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: progress %q (want empty, partial or complete)", ErrInvalidValue, s)
	}
	return p, nil
}

// ProjectStatus is the lifecycle state of a project attached to a subject.
type ProjectStatus string

const (
	ProjectNotStarted ProjectStatus = "not-started"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectCompleted  ProjectStatus = "completed"
)

// Valid reports whether s is one of the three known statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectNotStarted, ProjectInProgress, ProjectCompleted:
		return true
	}
	return false
}

// Next returns the status after s. An unknown status resets to not-started.
func (s ProjectStatus) Next() ProjectStatus {
	switch s {
	case ProjectNotStarted:
		return ProjectInProgress
	case ProjectInProgress:
		return ProjectCompleted
	default:
		return ProjectNotStarted
	}
}

// ParseProjectStatus converts user input into a ProjectStatus value.
func ParseProjectStatus(s string) (ProjectStatus, error) {
	st := ProjectStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: project status %q (want not-started, in-progress or completed)", ErrInvalidValue, s)
	}
	return st, nil
}

// Readiness describes whether a subject's hard prerequisites are done.
type Readiness string

const (
	ReadinessReady   Readiness = "ready"
	ReadinessPartial Readiness = "partial"
	ReadinessLocked  Readiness = "locked"
)

// Rank orders readiness from locked (0) to ready (2).
func (r Readiness) Rank() int {
	switch r {
	case ReadinessReady:
		return 2
	case ReadinessPartial:
		return 1
	default:
		return 0
	}
}

// ParseReadiness converts user input into a Readiness value.
func ParseReadiness(s string) (Readiness, error) {
	switch r := Readiness(s); r {
	case ReadinessReady, ReadinessPartial, ReadinessLocked:
		return r, nil
	}
	return "", fmt.Errorf("%w: readiness %q (want ready, partial or locked)", ErrInvalidValue, s)
}

// Theme names accepted by the document.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ToggleTheme flips between light and dark. Anything else becomes dark.
func ToggleTheme(theme string) string {
	if theme == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
