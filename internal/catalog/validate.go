package catalog

import "fmt"

// Validate reports problems that do not stop the catalog from loading:
// duplicate subject ids and references to unknown subjects.
func Validate(c *Catalog) []string {
	var warnings []string
	seen := make(map[string]string)
	for _, t := range c.Tiers {
		for _, s := range t.Subjects {
			if prev, ok := seen[s.ID]; ok {
				warnings = append(warnings, fmt.Sprintf("subject %q appears in both %q and %q", s.ID, prev, t.Name))
				continue
			}
			seen[s.ID] = t.Name
		}
	}
	for _, t := range c.Tiers {
		for _, s := range t.Subjects {
			for _, ref := range refs(s) {
				if _, ok := seen[ref.id]; !ok {
					warnings = append(warnings, fmt.Sprintf("subject %q: unknown %s %q", s.ID, ref.kind, ref.id))
				}
			}
		}
	}
	return warnings
}

type ref struct {
	kind string
	id   string
}

func refs(s SubjectDef) []ref {
	var out []ref
	for _, id := range s.Prereq {
		out = append(out, ref{"prerequisite", id})
	}
	for _, id := range s.Coreq {
		out = append(out, ref{"corequisite", id})
	}
	for _, id := range s.Soft {
		out = append(out, ref{"soft prerequisite", id})
	}
	return out
}
