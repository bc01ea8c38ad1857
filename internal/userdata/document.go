// Package userdata models the persisted user data document: progress,
// customizations of catalog subjects, custom subjects and custom tiers.
package userdata

import (
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
)

// OverlayEntry holds the user's additions to a catalog subject. A nil
// field was absent in the source and must not overwrite the default.
type OverlayEntry struct {
	SubjectID string
	Goal      *string
	Resources *domain.Resources
	Projects  *[]domain.Project
}

// Empty reports whether the overlay carries nothing.
func (o OverlayEntry) Empty() bool {
	return o.Goal == nil && o.Resources == nil && o.Projects == nil
}

// CustomSubjectEntry is the full definition of a user-created subject.
type CustomSubjectEntry struct {
	ID        string
	Tier      string
	Name      string
	Prereq    []string
	Coreq     []string
	Soft      []string
	Summary   string
	Goal      *string
	Resources domain.Resources
	Projects  []domain.Project
}

// CustomTierEntry describes a user-created tier. Zero values mean absent.
type CustomTierEntry struct {
	Name     string
	Category string
	Order    int
}

// Document is the user data persisted locally and remotely. Entry slices
// keep the order in which entries were read or produced.
type Document struct {
	Schema         string
	Progress       domain.ProgressMap
	Overlays       []OverlayEntry
	CustomSubjects []CustomSubjectEntry
	CustomTiers    []CustomTierEntry
	Theme          string
	LastModified   time.Time
	ExportDate     *time.Time
}

// Empty returns a document with no progress and no customizations.
func Empty(theme string) *Document {
	return &Document{
		Schema:   domain.SchemaVersion,
		Progress: domain.ProgressMap{},
		Theme:    domain.CoalesceStr(theme, domain.ThemeDark),
	}
}

// Overlay returns the overlay for a subject id.
func (d *Document) Overlay(id string) (OverlayEntry, bool) {
	for _, o := range d.Overlays {
		if o.SubjectID == id {
			return o, true
		}
	}
	return OverlayEntry{}, false
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	c := *d
	c.Progress = d.Progress.Clone()
	c.Overlays = make([]OverlayEntry, len(d.Overlays))
	for i, o := range d.Overlays {
		c.Overlays[i] = o.clone()
	}
	c.CustomSubjects = make([]CustomSubjectEntry, len(d.CustomSubjects))
	for i, s := range d.CustomSubjects {
		c.CustomSubjects[i] = s.clone()
	}
	c.CustomTiers = append([]CustomTierEntry(nil), d.CustomTiers...)
	if d.ExportDate != nil {
		t := *d.ExportDate
		c.ExportDate = &t
	}
	return &c
}

func (o OverlayEntry) clone() OverlayEntry {
	c := OverlayEntry{SubjectID: o.SubjectID, Goal: domain.CloneStrPtr(o.Goal)}
	if o.Resources != nil {
		rs := o.Resources.Clone()
		c.Resources = &rs
	}
	if o.Projects != nil {
		ps := domain.CloneProjects(*o.Projects)
		c.Projects = &ps
	}
	return c
}

func (s CustomSubjectEntry) clone() CustomSubjectEntry {
	s.Prereq = domain.CloneStrings(s.Prereq)
	s.Coreq = domain.CloneStrings(s.Coreq)
	s.Soft = domain.CloneStrings(s.Soft)
	s.Goal = domain.CloneStrPtr(s.Goal)
	s.Resources = s.Resources.Clone()
	s.Projects = domain.CloneProjects(s.Projects)
	return s
}
