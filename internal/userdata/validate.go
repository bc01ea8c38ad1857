package userdata

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

//go:embed schema/userdata.schema.json
var schemaJSON []byte

const schemaURL = "https://syllabus.local/userdata.schema.json"

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	var doc any
	if err := json.Unmarshal(schemaJSON, &doc); err != nil {
		return nil, fmt.Errorf("parse user data schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
})

// SchemaWarning reports a document whose schema differs from the current
// one. It is not fatal; callers decide whether to continue.
type SchemaWarning struct {
	Got  string
	Want string
	msg  string
}

func (w *SchemaWarning) Error() string {
	return w.msg
}

// CheckSchema returns a warning when doc was written under another schema.
func CheckSchema(doc *Document) *SchemaWarning {
	msg := domain.DescribeSchema(doc.Schema)
	if msg == "" {
		return nil
	}
	return &SchemaWarning{Got: doc.Schema, Want: domain.SchemaVersion, msg: msg}
}

// ValidateImport checks an exported file before it replaces the session.
// All structural problems are returned together; the document is only
// returned when there are none.
func ValidateImport(data []byte) (*Document, []error) {
	if !gjson.ValidBytes(data) {
		return nil, []error{fmt.Errorf("%w: not valid JSON", ErrInvalidDocument)}
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, []error{fmt.Errorf("%w: top level must be an object", ErrInvalidDocument)}
	}

	var errs []error
	if !root.Get("schema").Exists() && !root.Get("version").Exists() {
		errs = append(errs, errors.New("missing schema version"))
	}
	if !root.Get("progress").Exists() {
		errs = append(errs, errors.New("missing progress data"))
	}
	if err := validateShape(data); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errs
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, []error{err}
	}
	return doc, nil
}

func validateShape(data []byte) error {
	schema, err := compiled()
	if err != nil {
		return fmt.Errorf("compiling user data schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return nil
}
