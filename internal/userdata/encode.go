package userdata

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
)

type overlayWire struct {
	Goal      *string           `json:"goal,omitempty"`
	Resources *domain.Resources `json:"resources,omitempty"`
	Projects  *[]domain.Project `json:"projects,omitempty"`
}

type customSubjectWire struct {
	Name      string           `json:"name"`
	Tier      string           `json:"tier"`
	Prereq    []string         `json:"prereq"`
	Coreq     []string         `json:"coreq"`
	Soft      []string         `json:"soft"`
	Summary   string           `json:"summary"`
	Goal      *string          `json:"goal"`
	Resources domain.Resources `json:"resources"`
	Projects  []domain.Project `json:"projects"`
}

type customTierWire struct {
	Category string `json:"category"`
	Order    int    `json:"order"`
}

// MarshalJSON writes the document with a fixed key order. Entry maps keep
// the order of the entry slices; empty optional sections are omitted.
func (d *Document) MarshalJSON() ([]byte, error) {
	w := &objectWriter{}
	w.field("schema", d.Schema)
	if d.ExportDate != nil {
		w.field("exportDate", formatTime(*d.ExportDate))
	}
	if !d.LastModified.IsZero() {
		w.field("lastModified", formatTime(d.LastModified))
	}
	progress := d.Progress
	if progress == nil {
		progress = domain.ProgressMap{}
	}
	w.field("progress", progress)

	if len(d.Overlays) > 0 {
		obj := &objectWriter{}
		for _, o := range d.Overlays {
			obj.field(o.SubjectID, overlayWire{Goal: o.Goal, Resources: o.Resources, Projects: o.Projects})
		}
		w.nested("overlays", obj)
	}
	if len(d.CustomSubjects) > 0 {
		obj := &objectWriter{}
		for _, s := range d.CustomSubjects {
			obj.field(s.ID, customSubjectWire{
				Name:      s.Name,
				Tier:      s.Tier,
				Prereq:    domain.CloneStrings(s.Prereq),
				Coreq:     domain.CloneStrings(s.Coreq),
				Soft:      domain.CloneStrings(s.Soft),
				Summary:   s.Summary,
				Goal:      s.Goal,
				Resources: s.Resources,
				Projects:  domain.CloneProjects(s.Projects),
			})
		}
		w.nested("customSubjects", obj)
	}
	if len(d.CustomTiers) > 0 {
		obj := &objectWriter{}
		for _, t := range d.CustomTiers {
			obj.field(t.Name, customTierWire{Category: t.Category, Order: t.Order})
		}
		w.nested("customTiers", obj)
	}
	w.field("theme", d.Theme)
	return w.result()
}

// Encode renders d as indented JSON, the form written to disk and remote.
func Encode(d *Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// objectWriter builds a JSON object whose keys appear in insertion order.
type objectWriter struct {
	buf bytes.Buffer
	n   int
	err error
}

func (w *objectWriter) field(key string, v any) {
	if w.err != nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		w.err = err
		return
	}
	w.raw(key, data)
}

func (w *objectWriter) raw(key string, data []byte) {
	if w.err != nil {
		return
	}
	if w.n == 0 {
		w.buf.WriteByte('{')
	} else {
		w.buf.WriteByte(',')
	}
	k, err := json.Marshal(key)
	if err != nil {
		w.err = err
		return
	}
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.Write(data)
	w.n++
}

func (w *objectWriter) nested(key string, obj *objectWriter) {
	if obj.err != nil {
		w.err = obj.err
		return
	}
	w.raw(key, obj.bytes())
}

func (w *objectWriter) bytes() []byte {
	if w.n == 0 {
		return []byte("{}")
	}
	return append(append([]byte(nil), w.buf.Bytes()...), '}')
}

func (w *objectWriter) result() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.bytes(), nil
}
