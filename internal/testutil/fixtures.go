package testutil

import (
	"time"

	"github.com/alexanderramin/syllabus/internal/catalog"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/userdata"
)

// FixedTime is the clock value used by tests that need a stable "now".
var FixedTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// Catalog returns a small catalog with a dependency chain across two
// tiers plus the default custom tier:
//
//	Foundations: calc1, calc2 (prereq calc1), linalg (coreq calc2)
//	Physics:     classical (prereq calc2, linalg), quantum (prereq classical, linalg), astro (soft classical)
//	Other Subjects: geology
func Catalog() *catalog.Catalog {
	return &catalog.Catalog{
		Schema:  domain.SchemaVersion,
		Version: "test",
		Tiers: []catalog.TierDef{
			{
				Name: "Foundations", Category: "mathematics", Order: 0,
				Subjects: []catalog.SubjectDef{
					NewSubjectDef("calc1", "Calculus 1"),
					NewSubjectDef("calc2", "Calculus 2", WithPrereq("calc1")),
					NewSubjectDef("linalg", "Linear Algebra", WithCoreq("calc2")),
				},
			},
			{
				Name: "Physics", Category: "physics", Order: 1,
				Subjects: []catalog.SubjectDef{
					NewSubjectDef("classical", "Classical Mechanics", WithPrereq("calc2", "linalg")),
					NewSubjectDef("quantum", "Quantum Mechanics", WithPrereq("classical", "linalg"), WithSummary("wave functions")),
					NewSubjectDef("astro", "Astrophysics", WithSoft("classical")),
				},
			},
			{
				Name: domain.DefaultCustomTier, Category: "other", Order: 2,
				Subjects: []catalog.SubjectDef{
					NewSubjectDef("geology", "Geology"),
				},
			},
		},
	}
}

// SubjectDefOption customizes a catalog subject fixture.
type SubjectDefOption func(*catalog.SubjectDef)

func WithPrereq(ids ...string) SubjectDefOption {
	return func(s *catalog.SubjectDef) { s.Prereq = ids }
}

func WithCoreq(ids ...string) SubjectDefOption {
	return func(s *catalog.SubjectDef) { s.Coreq = ids }
}

func WithSoft(ids ...string) SubjectDefOption {
	return func(s *catalog.SubjectDef) { s.Soft = ids }
}

func WithSummary(summary string) SubjectDefOption {
	return func(s *catalog.SubjectDef) { s.Summary = summary }
}

func NewSubjectDef(id, name string, opts ...SubjectDefOption) catalog.SubjectDef {
	s := catalog.SubjectDef{ID: id, Name: name, Prereq: []string{}, Coreq: []string{}, Soft: []string{}}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// DocOption customizes a user data fixture.
type DocOption func(*userdata.Document)

func WithProgress(id string, p domain.Progress) DocOption {
	return func(d *userdata.Document) { d.Progress[id] = p }
}

func WithGoalOverlay(id, goal string) DocOption {
	return func(d *userdata.Document) {
		d.Overlays = append(d.Overlays, userdata.OverlayEntry{SubjectID: id, Goal: domain.StrPtr(goal)})
	}
}

func WithCustomSubject(id, name, tier string, prereq ...string) DocOption {
	return func(d *userdata.Document) {
		d.CustomSubjects = append(d.CustomSubjects, userdata.CustomSubjectEntry{
			ID:        id,
			Tier:      tier,
			Name:      name,
			Prereq:    domain.CloneStrings(prereq),
			Coreq:     []string{},
			Soft:      []string{},
			Resources: domain.Resources{},
			Projects:  []domain.Project{},
		})
	}
}

func WithCustomTier(name string) DocOption {
	return func(d *userdata.Document) {
		d.CustomTiers = append(d.CustomTiers, userdata.CustomTierEntry{
			Name:     name,
			Category: domain.CustomCategory,
			Order:    domain.CustomTierOrder,
		})
	}
}

func WithLastModified(t time.Time) DocOption {
	return func(d *userdata.Document) { d.LastModified = t }
}

func WithTheme(theme string) DocOption {
	return func(d *userdata.Document) { d.Theme = theme }
}

// NewDoc returns a current-schema document stamped with FixedTime.
func NewDoc(opts ...DocOption) *userdata.Document {
	d := userdata.Empty(domain.ThemeDark)
	d.LastModified = FixedTime
	for _, opt := range opts {
		opt(d)
	}
	return d
}
