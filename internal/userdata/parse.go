package userdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/tidwall/gjson"
)

// ErrInvalidDocument is returned when user data cannot be decoded.
var ErrInvalidDocument = errors.New("invalid user data")

// Parse decodes a user data document. Optional sections may be missing;
// only malformed JSON or wrongly typed fields are errors. The legacy
// "version" key is accepted in place of "schema".
func Parse(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidDocument)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level must be an object", ErrInvalidDocument)
	}

	d := &Document{
		Schema:       domain.CoalesceStr(root.Get("schema").String(), root.Get("version").String()),
		Progress:     domain.ProgressMap{},
		Theme:        root.Get("theme").String(),
		LastModified: parseTime(root.Get("lastModified")),
	}
	if ts := root.Get("exportDate"); ts.Exists() {
		t := parseTime(ts)
		d.ExportDate = &t
	}

	var err error
	root.Get("progress").ForEach(func(id, v gjson.Result) bool {
		if v.Type != gjson.String {
			err = fmt.Errorf("%w: progress for %q must be a string", ErrInvalidDocument, id.String())
			return false
		}
		d.Progress[id.String()] = domain.Progress(v.String())
		return true
	})
	if err != nil {
		return nil, err
	}

	root.Get("overlays").ForEach(func(id, ov gjson.Result) bool {
		var o OverlayEntry
		o, err = parseOverlay(id.String(), ov)
		if err != nil {
			return false
		}
		d.Overlays = append(d.Overlays, o)
		return true
	})
	if err != nil {
		return nil, err
	}

	root.Get("customSubjects").ForEach(func(id, def gjson.Result) bool {
		var s CustomSubjectEntry
		s, err = parseCustomSubject(id.String(), def)
		if err != nil {
			return false
		}
		d.CustomSubjects = append(d.CustomSubjects, s)
		return true
	})
	if err != nil {
		return nil, err
	}

	root.Get("customTiers").ForEach(func(name, t gjson.Result) bool {
		d.CustomTiers = append(d.CustomTiers, CustomTierEntry{
			Name:     name.String(),
			Category: t.Get("category").String(),
			Order:    int(t.Get("order").Int()),
		})
		return true
	})
	return d, nil
}

func parseOverlay(id string, ov gjson.Result) (OverlayEntry, error) {
	o := OverlayEntry{SubjectID: id}
	if !ov.IsObject() {
		return o, fmt.Errorf("%w: overlay %q must be an object", ErrInvalidDocument, id)
	}
	goal, err := optionalString(ov.Get("goal"))
	if err != nil {
		return o, fmt.Errorf("overlay %q goal: %w", id, err)
	}
	o.Goal = goal
	if r := ov.Get("resources"); present(r) {
		rs, err := decodeResources(r)
		if err != nil {
			return o, fmt.Errorf("overlay %q: %w", id, err)
		}
		o.Resources = &rs
	}
	if p := ov.Get("projects"); present(p) {
		ps, err := decodeProjects(p)
		if err != nil {
			return o, fmt.Errorf("overlay %q: %w", id, err)
		}
		o.Projects = &ps
	}
	return o, nil
}

func parseCustomSubject(id string, def gjson.Result) (CustomSubjectEntry, error) {
	s := CustomSubjectEntry{
		ID:      id,
		Tier:    def.Get("tier").String(),
		Name:    def.Get("name").String(),
		Prereq:  stringList(def.Get("prereq")),
		Coreq:   stringList(def.Get("coreq")),
		Soft:    stringList(def.Get("soft")),
		Summary: def.Get("summary").String(),
	}
	if !def.IsObject() {
		return s, fmt.Errorf("%w: custom subject %q must be an object", ErrInvalidDocument, id)
	}
	goal, err := optionalString(def.Get("goal"))
	if err != nil {
		return s, fmt.Errorf("custom subject %q goal: %w", id, err)
	}
	s.Goal = goal
	if s.Resources, err = decodeResources(def.Get("resources")); err != nil {
		return s, fmt.Errorf("custom subject %q: %w", id, err)
	}
	if s.Projects, err = decodeProjects(def.Get("projects")); err != nil {
		return s, fmt.Errorf("custom subject %q: %w", id, err)
	}
	return s, nil
}

func present(r gjson.Result) bool {
	return r.Exists() && r.Type != gjson.Null
}

func optionalString(r gjson.Result) (*string, error) {
	if !present(r) {
		return nil, nil
	}
	if r.Type != gjson.String {
		return nil, fmt.Errorf("%w: expected a string", ErrInvalidDocument)
	}
	return domain.StrPtr(r.String()), nil
}

func decodeResources(r gjson.Result) (domain.Resources, error) {
	rs := domain.Resources{}
	if !present(r) {
		return rs, nil
	}
	if !r.IsArray() {
		return nil, fmt.Errorf("%w: resources must be an array", ErrInvalidDocument)
	}
	if err := json.Unmarshal([]byte(r.Raw), &rs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return rs, nil
}

func decodeProjects(r gjson.Result) ([]domain.Project, error) {
	ps := []domain.Project{}
	if !present(r) {
		return ps, nil
	}
	if !r.IsArray() {
		return nil, fmt.Errorf("%w: projects must be an array", ErrInvalidDocument)
	}
	if err := json.Unmarshal([]byte(r.Raw), &ps); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	for i := range ps {
		if ps[i].Resources == nil {
			ps[i].Resources = domain.Resources{}
		}
	}
	return ps, nil
}

func stringList(r gjson.Result) []string {
	out := []string{}
	for _, v := range r.Array() {
		out = append(out, v.String())
	}
	return out
}

func parseTime(r gjson.Result) time.Time {
	if r.Type != gjson.String {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, r.String())
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
