// Package model contains domain models passed between layers.
package model

import "sort"

// Subject names an academic subject, e.g. "Math".
type Subject string

// Canonical subjects, listed in their fixed priority order.
const (
	Math         Subject = "Math"
	Science      Subject = "Science"
	LanguageArts Subject = "Language Arts"
	History      Subject = "History"
)

// subjectPriority is the reproducible tie-break order between subjects.
var subjectPriority = map[Subject]int{
	Math:         0,
	Science:      1,
	LanguageArts: 2,
	History:      3,
}

// CanonicalSubjects returns the four canonical subjects in priority order.
func CanonicalSubjects() []Subject {
	return []Subject{Math, Science, LanguageArts, History}
}

// Priority returns the tie-break rank of s. Unknown subjects share the
// lowest priority and are ordered by name by PriorityLess.
func (s Subject) Priority() int {
	if p, ok := subjectPriority[s]; ok {
		return p
	}
	return len(subjectPriority)
}

// PriorityLess reports whether a ranks before b in the fixed subject order.
func PriorityLess(a, b Subject) bool {
	pa, pb := a.Priority(), b.Priority()
	if pa != pb {
		return pa < pb
	}
	return a < b
}

// SortSubjects sorts subjects in place by priority.
func SortSubjects(subjects []Subject) {
	sort.Slice(subjects, func(i, j int) bool {
		return PriorityLess(subjects[i], subjects[j])
	})
}
