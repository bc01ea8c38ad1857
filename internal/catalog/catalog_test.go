package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderedCatalog = `{
  "schema": "3.0",
  "catalogVersion": "test",
  "tiers": {
    "Zeta": {
      "category": "math",
      "subjects": {
        "z2": {"name": "Zed Two", "prereq": ["z1"]},
        "z1": {"name": "Zed One", "summary": "first"}
      }
    },
    "Alpha": {
      "category": "physics",
      "order": 7,
      "subjects": {
        "a1": {"name": "Alpha One", "coreq": ["z2"], "soft": ["z1"]}
      }
    }
  }
}`

func TestParse_PreservesSourceOrder(t *testing.T) {
	c, err := Parse([]byte(orderedCatalog))
	require.NoError(t, err)

	require.Len(t, c.Tiers, 2)
	assert.Equal(t, "Zeta", c.Tiers[0].Name)
	assert.Equal(t, "Alpha", c.Tiers[1].Name)
	assert.Equal(t, "z2", c.Tiers[0].Subjects[0].ID)
	assert.Equal(t, "z1", c.Tiers[0].Subjects[1].ID)
	assert.Equal(t, "test", c.Version)
	assert.Equal(t, 3, c.SubjectCount())
}

func TestParse_OrderDefaultsToPosition(t *testing.T) {
	c, err := Parse([]byte(orderedCatalog))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Tiers[0].Order)
	assert.Equal(t, 7, c.Tiers[1].Order)
}

func TestParse_MissingListsBecomeEmpty(t *testing.T) {
	c, err := Parse([]byte(orderedCatalog))
	require.NoError(t, err)

	z1 := c.Tiers[0].Subjects[1]
	assert.NotNil(t, z1.Prereq)
	assert.Empty(t, z1.Prereq)
	assert.Empty(t, z1.Coreq)
	assert.Equal(t, "first", z1.Summary)

	a1 := c.Tiers[1].Subjects[0]
	assert.Equal(t, []string{"z2"}, a1.Coreq)
	assert.Equal(t, []string{"z1"}, a1.Soft)
}

func TestParse_SchemaMismatch(t *testing.T) {
	_, err := Parse([]byte(`{"schema": "2.0", "tiers": {}}`))
	require.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Contains(t, err.Error(), "older")

	_, err = Parse([]byte(`{"tiers": {}}`))
	require.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestParse_RejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":          `{"schema": "3.0",`,
		"array root":        `[1,2]`,
		"subject no name":   `{"schema": "3.0", "tiers": {"T": {"subjects": {"x": {}}}}}`,
		"prereq not array":  `{"schema": "3.0", "tiers": {"T": {"subjects": {"x": {"name": "X", "prereq": "y"}}}}}`,
		"tier without list": `{"schema": "3.0", "tiers": {"T": {"category": "c"}}}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestDefault_EmbeddedCatalogIsConsistent(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "3.0", c.Schema)
	assert.Len(t, c.Tiers, 14)
	assert.Equal(t, "Mathematics", c.Tiers[0].Name)
	assert.Equal(t, "calc1", c.Tiers[0].Subjects[0].ID)
	assert.Equal(t, "Other Subjects", c.Tiers[len(c.Tiers)-1].Name)
	assert.Empty(t, Validate(c))
}

func TestLoad_FromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(orderedCatalog), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Tiers, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestValidate_ReportsDuplicatesAndDanglingRefs(t *testing.T) {
	c := &Catalog{Tiers: []TierDef{
		{Name: "A", Subjects: []SubjectDef{{ID: "x", Prereq: []string{"ghost"}}}},
		{Name: "B", Subjects: []SubjectDef{{ID: "x"}, {ID: "y", Soft: []string{"x"}}}},
	}}
	warnings := Validate(c)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], `"x" appears in both "A" and "B"`)
	assert.Contains(t, warnings[1], `unknown prerequisite "ghost"`)
}
