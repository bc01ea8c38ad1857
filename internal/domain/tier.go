package domain

const (
	// SchemaVersion is the only user-data and catalog schema understood.
	SchemaVersion = "3.0"

	// DefaultCustomTier receives custom subjects that name no tier.
	DefaultCustomTier = "Other Subjects"

	// CustomCategory marks tiers created by the user.
	CustomCategory = "custom"

	// CustomTierOrder is the order given to user tiers that carry none.
	CustomTierOrder = 999
)

// Tier is a named, ordered group of subjects.
type Tier struct {
	Name     string
	Category string
	Order    int
	Subjects []*Subject
}

// NewCustomTier returns an empty user tier.
func NewCustomTier(name string) *Tier {
	return &Tier{Name: name, Category: CustomCategory, Order: CustomTierOrder, Subjects: []*Subject{}}
}

// IsCustom reports whether the tier was created by the user rather than
// shipped in the catalog.
func (t *Tier) IsCustom() bool {
	return t.Order >= CustomTierOrder || t.Category == CustomCategory
}

// Subject returns the subject with the given id in this tier.
func (t *Tier) Subject(id string) *Subject {
	for _, s := range t.Subjects {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// RemoveSubject drops the subject with the given id and reports whether it
// was present.
func (t *Tier) RemoveSubject(id string) bool {
	for i, s := range t.Subjects {
		if s.ID == id {
			t.Subjects = append(t.Subjects[:i], t.Subjects[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy of t.
func (t *Tier) Clone() *Tier {
	c := &Tier{Name: t.Name, Category: t.Category, Order: t.Order, Subjects: make([]*Subject, len(t.Subjects))}
	for i, s := range t.Subjects {
		c.Subjects[i] = s.Clone()
	}
	return c
}
