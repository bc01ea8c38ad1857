package domain

// ProgressMap records per-subject progress. A missing key means empty.
type ProgressMap map[string]Progress

// Get returns the progress for id, defaulting to empty.
func (m ProgressMap) Get(id string) Progress {
	if p, ok := m[id]; ok {
		return p
	}
	return ProgressEmpty
}

// Clone returns a copy of m that is never nil.
func (m ProgressMap) Clone() ProgressMap {
	out := make(ProgressMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
