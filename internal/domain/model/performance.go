package model

// PerformanceVector maps a subject to the student's current score (0..100).
type PerformanceVector map[Subject]float64

// Clone returns an independent copy. A nil vector clones to an empty one.
func (v PerformanceVector) Clone() PerformanceVector {
	out := make(PerformanceVector, len(v))
	for s, score := range v {
		out[s] = score
	}
	return out
}

// Merge returns a copy of v with subject set to score. The latest score
// overwrites any previous value; v itself is not modified.
func (v PerformanceVector) Merge(subject Subject, score float64) PerformanceVector {
	out := v.Clone()
	out[subject] = score
	return out
}

// Subjects returns the subjects present in v in priority order.
func (v PerformanceVector) Subjects() []Subject {
	out := make([]Subject, 0, len(v))
	for s := range v {
		out = append(out, s)
	}
	SortSubjects(out)
	return out
}
