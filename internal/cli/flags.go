package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/spf13/pflag"
)

// progressValue is a pflag.Value accepting empty, partial or complete.
type progressValue struct {
	p *domain.Progress
}

var _ pflag.Value = progressValue{}

func (v progressValue) String() string {
	if v.p == nil {
		return ""
	}
	return string(*v.p)
}

func (v progressValue) Set(s string) error {
	p, err := domain.ParseProgress(s)
	if err != nil {
		return err
	}
	*v.p = p
	return nil
}

func (progressValue) Type() string { return "progress" }

// readinessValue is a pflag.Value accepting ready, partial or locked.
type readinessValue struct {
	r *domain.Readiness
}

var _ pflag.Value = readinessValue{}

func (v readinessValue) String() string {
	if v.r == nil {
		return ""
	}
	return string(*v.r)
}

func (v readinessValue) Set(s string) error {
	r, err := domain.ParseReadiness(s)
	if err != nil {
		return err
	}
	*v.r = r
	return nil
}

func (readinessValue) Type() string { return "readiness" }

// parsePosition turns a 1-based position typed by the user into an index.
func parsePosition(what, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive number, got %q", what, s)
	}
	return n - 1, nil
}

// projectRef builds a reference from a subject id and a 1-based position.
func projectRef(subjectID, position string) (domain.ProjectRef, error) {
	idx, err := parsePosition("project number", position)
	if err != nil {
		return domain.ProjectRef{}, err
	}
	return domain.ProjectRef{SubjectID: subjectID, Index: idx}, nil
}
