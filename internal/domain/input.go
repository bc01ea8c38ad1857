package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// NewSubjectInput carries the fields accepted when creating a custom subject.
type NewSubjectInput struct {
	ID      string `validate:"required"`
	Name    string `validate:"required"`
	Tier    string `validate:"required"`
	Prereq  []string
	Coreq   []string
	Soft    []string
	Summary string
	Goal    string
}

// Normalize trims whitespace, fills the default tier and derives the id
// from the name when none was given.
func (in *NewSubjectInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Tier = CoalesceStr(strings.TrimSpace(in.Tier), DefaultCustomTier)
	in.ID = strings.TrimSpace(in.ID)
	if in.ID == "" {
		in.ID = Slugify(in.Name)
	}
	in.Summary = strings.TrimSpace(in.Summary)
	in.Goal = strings.TrimSpace(in.Goal)
	in.Prereq = trimAll(in.Prereq)
	in.Coreq = trimAll(in.Coreq)
	in.Soft = trimAll(in.Soft)
}

// ProjectInput carries the editable fields of a project.
type ProjectInput struct {
	Name      string `validate:"required"`
	Goal      string `validate:"required"`
	Resources Resources
}

// Normalize trims whitespace from the text fields.
func (in *ProjectInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Goal = strings.TrimSpace(in.Goal)
}

// Validate checks struct tags on v and folds failures into one ErrValidation.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s is %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

func trimAll(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
