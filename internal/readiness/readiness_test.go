package readiness_test

import (
	"testing"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/engine"
	"github.com/alexanderramin/syllabus/internal/readiness"
	"github.com/alexanderramin/syllabus/internal/testutil"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGraph(t *testing.T) *domain.Graph {
	t.Helper()
	return engine.Merge(testutil.Catalog(), nil)
}

func TestCalculate(t *testing.T) {
	g := testGraph(t)
	quantum := g.Subject("quantum")

	tests := []struct {
		name     string
		progress domain.ProgressMap
		want     domain.Readiness
	}{
		{"nothing done", domain.ProgressMap{}, domain.ReadinessLocked},
		{"partial prereqs count as not done", domain.ProgressMap{"classical": domain.ProgressPartial, "linalg": domain.ProgressPartial}, domain.ReadinessLocked},
		{"one of two complete", domain.ProgressMap{"classical": domain.ProgressComplete}, domain.ReadinessPartial},
		{"all complete", domain.ProgressMap{"classical": domain.ProgressComplete, "linalg": domain.ProgressComplete}, domain.ReadinessReady},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, readiness.Calculate(quantum, tt.progress))
		})
	}
}

func TestCalculate_NoPrereqsIsReady(t *testing.T) {
	g := testGraph(t)
	assert.Equal(t, domain.ReadinessReady, readiness.Calculate(g.Subject("calc1"), domain.ProgressMap{}))
}

func TestCalculate_IgnoresCoreqAndSoft(t *testing.T) {
	g := testGraph(t)
	assert.Equal(t, domain.ReadinessReady, readiness.Calculate(g.Subject("linalg"), domain.ProgressMap{}), "coreq only")
	assert.Equal(t, domain.ReadinessReady, readiness.Calculate(g.Subject("astro"), domain.ProgressMap{}), "soft only")
}

func TestCalculate_DanglingPrereqReadsEmpty(t *testing.T) {
	s := &domain.Subject{ID: "x", Prereq: []string{"calc1", "deleted"}}
	assert.Equal(t, domain.ReadinessPartial, readiness.Calculate(s, domain.ProgressMap{"calc1": domain.ProgressComplete}))
}

func TestTierProgress(t *testing.T) {
	g := testGraph(t)
	progress := domain.ProgressMap{"calc1": domain.ProgressComplete, "calc2": domain.ProgressPartial, "classical": domain.ProgressComplete}

	done, total := readiness.TierProgress(g.Tier("Foundations"), progress)
	assert.Equal(t, 1, done)
	assert.Equal(t, 3, total)

	done, total = readiness.TierProgress(domain.NewCustomTier("Empty"), progress)
	assert.Zero(t, done)
	assert.Zero(t, total)
}

func TestPartition_KeepsGraphOrder(t *testing.T) {
	g := testGraph(t)
	progress := domain.ProgressMap{
		"quantum": domain.ProgressPartial,
		"calc2":   domain.ProgressPartial,
		"geology": domain.ProgressComplete,
		"calc1":   domain.ProgressComplete,
		"linalg":  domain.ProgressEmpty,
	}

	d := readiness.Partition(g, progress)
	require.Len(t, d.Current, 2)
	assert.Equal(t, "calc2", d.Current[0].Subject.ID)
	assert.Equal(t, "quantum", d.Current[1].Subject.ID)
	assert.Equal(t, "Physics", d.Current[1].Tier)
	require.Len(t, d.Completed, 2)
	assert.Equal(t, "calc1", d.Completed[0].Subject.ID)
	assert.Equal(t, "geology", d.Completed[1].Subject.ID)
}

func TestSummarize(t *testing.T) {
	g := testGraph(t)
	progress := domain.ProgressMap{
		"calc1":  domain.ProgressComplete,
		"calc2":  domain.ProgressComplete,
		"linalg": domain.ProgressPartial,
	}

	st := readiness.Summarize(g, progress)
	assert.Equal(t, 7, st.Total)
	assert.Equal(t, 2, st.Completed)
	assert.Equal(t, 1, st.InProgress)
	assert.Equal(t, 4, st.NotStarted)
	// astro and geology have no prereqs; classical still waits on linalg.
	assert.Equal(t, 2, st.Ready)
	assert.Equal(t, 29, st.Percentage)
}

func TestSummarize_EmptyGraph(t *testing.T) {
	st := readiness.Summarize(domain.NewGraph(), domain.ProgressMap{})
	assert.Equal(t, readiness.Stats{}, st)
}

func TestDependents(t *testing.T) {
	g := testGraph(t)
	deps := readiness.Dependents(g, "classical")
	ids := make([]string, 0, len(deps))
	for _, s := range deps {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"quantum", "astro"}, ids)
	assert.Empty(t, readiness.Dependents(g, "quantum"))
}

func TestFilter(t *testing.T) {
	g := testGraph(t)
	g.Subject("geology").Goal = domain.StrPtr("rocks and minerals")
	progress := domain.ProgressMap{"calc1": domain.ProgressComplete, "calc2": domain.ProgressPartial}

	ids := func(groups []readiness.Group) []string {
		var out []string
		for _, grp := range groups {
			for _, s := range grp.Subjects {
				out = append(out, s.ID)
			}
		}
		return out
	}

	assert.Len(t, ids(readiness.Filter(g, progress, readiness.Criteria{})), 7)
	assert.Equal(t, []string{"calc2"}, ids(readiness.Filter(g, progress, readiness.Criteria{Status: domain.ProgressPartial})))
	assert.Equal(t, []string{"classical", "quantum", "astro"}, ids(readiness.Filter(g, progress, readiness.Criteria{Category: "physics"})))
	assert.Equal(t, []string{"quantum"}, ids(readiness.Filter(g, progress, readiness.Criteria{Search: "WAVE"})), "summary is searched")
	assert.Equal(t, []string{"geology"}, ids(readiness.Filter(g, progress, readiness.Criteria{Search: "minerals"})), "goal is searched")
	assert.Equal(t, []string{"classical", "quantum"}, ids(readiness.Filter(g, progress, readiness.Criteria{Readiness: domain.ReadinessLocked})))

	groups := readiness.Filter(g, progress, readiness.Criteria{Search: "calculus"})
	require.Len(t, groups, 1, "tiers without matches are dropped")
	assert.Equal(t, "Foundations", groups[0].Tier.Name)
}

func TestReadiness_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	g := engine.Merge(testutil.Catalog(), nil)
	subjects := g.Subjects()
	states := []domain.Progress{domain.ProgressEmpty, domain.ProgressPartial, domain.ProgressComplete}
	toMap := func(assign []int) domain.ProgressMap {
		m := domain.ProgressMap{}
		for i, v := range assign {
			m[subjects[i].ID] = states[v]
		}
		return m
	}

	properties.Property("completing a subject never lowers readiness", prop.ForAll(
		func(assign []int, pick int) bool {
			before := toMap(assign)
			after := before.Clone()
			after[subjects[pick].ID] = domain.ProgressComplete
			for _, s := range subjects {
				if readiness.Calculate(s, after).Rank() < readiness.Calculate(s, before).Rank() {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(len(subjects), gen.IntRange(0, 2)),
		gen.IntRange(0, len(subjects)-1),
	))

	properties.Property("partition covers exactly the started subjects", prop.ForAll(
		func(assign []int) bool {
			progress := toMap(assign)
			d := readiness.Partition(g, progress)
			st := readiness.Summarize(g, progress)
			return len(d.Current) == st.InProgress &&
				len(d.Completed) == st.Completed &&
				st.Completed+st.InProgress+st.NotStarted == st.Total
		},
		gen.SliceOfN(len(subjects), gen.IntRange(0, 2)),
	))

	properties.Property("cycling three times restores progress", prop.ForAll(
		func(v int) bool {
			p := states[v]
			return p.Next().Next().Next() == p
		},
		gen.IntRange(0, 2),
	))

	properties.TestingRun(t)
}
