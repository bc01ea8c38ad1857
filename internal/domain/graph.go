package domain

// Graph is the merged curriculum: tiers in insertion order, each holding
// its subjects in insertion order. Subject ids are unique across tiers.
type Graph struct {
	Tiers []*Tier
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{Tiers: []*Tier{}}
}

// Tier returns the tier with the given name.
func (g *Graph) Tier(name string) *Tier {
	for _, t := range g.Tiers {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// AddTier appends t. The caller guarantees the name is not taken.
func (g *Graph) AddTier(t *Tier) {
	g.Tiers = append(g.Tiers, t)
}

// EnsureCustomTier returns the named tier, creating it as a custom tier
// when missing.
func (g *Graph) EnsureCustomTier(name string) *Tier {
	if t := g.Tier(name); t != nil {
		return t
	}
	t := NewCustomTier(name)
	g.AddTier(t)
	return t
}

// RemoveTier drops the named tier and reports whether it was present.
func (g *Graph) RemoveTier(name string) bool {
	for i, t := range g.Tiers {
		if t.Name == name {
			g.Tiers = append(g.Tiers[:i], g.Tiers[i+1:]...)
			return true
		}
	}
	return false
}

// Locate returns the subject with the given id and the tier that holds it.
func (g *Graph) Locate(id string) (*Subject, *Tier) {
	for _, t := range g.Tiers {
		if s := t.Subject(id); s != nil {
			return s, t
		}
	}
	return nil, nil
}

// Subject returns the subject with the given id, or nil.
func (g *Graph) Subject(id string) *Subject {
	s, _ := g.Locate(id)
	return s
}

// Has reports whether any tier holds a subject with the given id.
func (g *Graph) Has(id string) bool {
	return g.Subject(id) != nil
}

// Subjects returns every subject in tier order, then subject order.
func (g *Graph) Subjects() []*Subject {
	var out []*Subject
	for _, t := range g.Tiers {
		out = append(out, t.Subjects...)
	}
	return out
}

// Len returns the number of subjects across all tiers.
func (g *Graph) Len() int {
	n := 0
	for _, t := range g.Tiers {
		n += len(t.Subjects)
	}
	return n
}

// Categories returns the distinct non-empty tier categories in first-seen order.
func (g *Graph) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range g.Tiers {
		if t.Category == "" || seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		out = append(out, t.Category)
	}
	return out
}

// Clone returns a deep copy of g.
func (g *Graph) Clone() *Graph {
	c := &Graph{Tiers: make([]*Tier, len(g.Tiers))}
	for i, t := range g.Tiers {
		c.Tiers[i] = t.Clone()
	}
	return c
}
