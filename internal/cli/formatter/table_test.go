package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTable(t *testing.T) {
	got := RenderTable([]string{"ID", "NAME"}, [][]string{
		{"calc1", "Calculus 1"},
		{"qm", "Quantum Mechanics"},
		{"short"},
	})
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	assert.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "─")
	assert.Equal(t, strings.Index(lines[2], "Calculus"), strings.Index(lines[3], "Quantum"))
	assert.Equal(t, "short", strings.TrimSpace(lines[4]))
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestRenderKeyValues(t *testing.T) {
	got := RenderKeyValues([][2]string{{"Tier", "Physics"}, {"Readiness", "READY"}})
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, strings.Index(lines[0], "Physics"), strings.Index(lines[1], "READY"))
}
