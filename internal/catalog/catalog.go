// Package catalog loads the read-only curriculum shipped with the app.
package catalog

import (
	"embed"
	"fmt"
	"os"
)

//go:embed data/catalog.json
var defaultFS embed.FS

// SubjectDef is a catalog subject as shipped, before user data is applied.
type SubjectDef struct {
	ID      string
	Name    string
	Prereq  []string
	Coreq   []string
	Soft    []string
	Summary string
}

// TierDef is a named group of subjects in catalog order.
type TierDef struct {
	Name     string
	Category string
	Order    int
	Subjects []SubjectDef
}

// Catalog is the parsed catalog document. Tiers and subjects keep the
// order in which they appear in the source JSON.
type Catalog struct {
	Schema  string
	Version string
	Tiers   []TierDef
}

// SubjectCount returns the number of subjects across all tiers.
func (c *Catalog) SubjectCount() int {
	n := 0
	for _, t := range c.Tiers {
		n += len(t.Subjects)
	}
	return n
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	data, err := defaultFS.ReadFile("data/catalog.json")
	if err != nil {
		return nil, fmt.Errorf("reading embedded catalog: %w", err)
	}
	return Parse(data)
}

// Load reads and parses a catalog file from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
