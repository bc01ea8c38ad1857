package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "embed"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tidwall/gjson"
)

var (
	// ErrInvalidCatalog is returned when the catalog is not well-formed.
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ErrSchemaMismatch is returned when the catalog declares a schema
	// version other than the one this build understands.
	ErrSchemaMismatch = errors.New("catalog schema mismatch")
)

//go:embed schema/catalog.schema.json
var schemaJSON []byte

const schemaURL = "https://syllabus.local/catalog.schema.json"

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	var doc any
	if err := json.Unmarshal(schemaJSON, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
})

// Parse decodes a catalog document. Tier and subject order follow the
// order of keys in data.
func Parse(data []byte) (*Catalog, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidCatalog)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level must be an object", ErrInvalidCatalog)
	}

	schema := root.Get("schema").String()
	if msg := domain.DescribeSchema(schema); msg != "" {
		return nil, fmt.Errorf("%w: %s", ErrSchemaMismatch, msg)
	}
	if err := validateShape(data); err != nil {
		return nil, err
	}

	c := &Catalog{
		Schema:  schema,
		Version: root.Get("catalogVersion").String(),
	}
	pos := 0
	root.Get("tiers").ForEach(func(name, tier gjson.Result) bool {
		td := TierDef{
			Name:     name.String(),
			Category: tier.Get("category").String(),
			Order:    pos,
		}
		if order := tier.Get("order"); order.Exists() {
			td.Order = int(order.Int())
		}
		tier.Get("subjects").ForEach(func(id, def gjson.Result) bool {
			td.Subjects = append(td.Subjects, SubjectDef{
				ID:      id.String(),
				Name:    def.Get("name").String(),
				Prereq:  stringList(def.Get("prereq")),
				Coreq:   stringList(def.Get("coreq")),
				Soft:    stringList(def.Get("soft")),
				Summary: def.Get("summary").String(),
			})
			return true
		})
		c.Tiers = append(c.Tiers, td)
		pos++
		return true
	})
	return c, nil
}

func validateShape(data []byte) error {
	schema, err := compiled()
	if err != nil {
		return fmt.Errorf("compiling catalog schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return nil
}

func stringList(r gjson.Result) []string {
	out := []string{}
	for _, v := range r.Array() {
		out = append(out, v.String())
	}
	return out
}
