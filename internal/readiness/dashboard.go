package readiness

import "github.com/alexanderramin/syllabus/internal/domain"

// Entry pairs a subject with the name of the tier that holds it.
type Entry struct {
	Tier    string
	Subject *domain.Subject
}

// Dashboard splits the started subjects into those in progress and those
// complete, each in graph order.
type Dashboard struct {
	Current   []Entry
	Completed []Entry
}

// Partition builds the dashboard. Subjects that are empty appear in
// neither list.
func Partition(g *domain.Graph, progress Lookup) Dashboard {
	var d Dashboard
	for _, t := range g.Tiers {
		for _, s := range t.Subjects {
			switch progress.Get(s.ID) {
			case domain.ProgressPartial:
				d.Current = append(d.Current, Entry{Tier: t.Name, Subject: s})
			case domain.ProgressComplete:
				d.Completed = append(d.Completed, Entry{Tier: t.Name, Subject: s})
			}
		}
	}
	return d
}

// Stats summarizes the whole graph.
type Stats struct {
	Total      int
	Completed  int
	InProgress int
	NotStarted int
	// Ready counts subjects not yet started whose prerequisites are done.
	Ready      int
	Percentage int
}

// Summarize computes Stats for g.
func Summarize(g *domain.Graph, progress Lookup) Stats {
	var st Stats
	for _, s := range g.Subjects() {
		st.Total++
		switch progress.Get(s.ID) {
		case domain.ProgressComplete:
			st.Completed++
		case domain.ProgressPartial:
			st.InProgress++
		default:
			st.NotStarted++
			if Calculate(s, progress) == domain.ReadinessReady {
				st.Ready++
			}
		}
	}
	if st.Total > 0 {
		st.Percentage = (st.Completed*100 + st.Total/2) / st.Total
	}
	return st
}

// Dependents returns the subjects that reference id as a prerequisite,
// corequisite or soft prerequisite.
func Dependents(g *domain.Graph, id string) []*domain.Subject {
	var out []*domain.Subject
	for _, s := range g.Subjects() {
		if s.ID == id {
			continue
		}
		if contains(s.Prereq, id) || contains(s.Coreq, id) || contains(s.Soft, id) {
			out = append(out, s)
		}
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
