package planner

import (
	"fmt"

	"github.com/vinay2231/Edututor-AI/internal/domain/model"
)

// InterventionKind classifies the instructor-facing suggestion.
type InterventionKind string

// Intervention kinds.
const (
	InterventionNeeded InterventionKind = "intervention"
	MonitoringNeeded   InterventionKind = "monitoring"
	OnTrack            InterventionKind = "on-track"
)

// minCompletedAssessments is the count below which a student is monitored.
const minCompletedAssessments = 5

// Intervention is a suggestion for the instructor of one student.
type Intervention struct {
	Kind    InterventionKind `json:"kind"`
	Subject model.Subject    `json:"subject,omitempty"`
	Summary string           `json:"summary"`
	Actions []string         `json:"actions"`
}

// Interventions picks the lowest-level weak subject for intervention. Without
// weak subjects, students with few completed assessments are monitored.
func Interventions(levels map[model.Subject]int, weak []model.Subject, completed int) Intervention {
	var (
		target model.Subject
		found  bool
	)
	for _, s := range weak {
		l, ok := levels[s]
		if !ok {
			continue
		}
		if !found || l < levels[target] || (l == levels[target] && model.PriorityLess(s, target)) {
			target, found = s, true
		}
	}

	switch {
	case found:
		return Intervention{
			Kind:    InterventionNeeded,
			Subject: target,
			Summary: fmt.Sprintf("%s performance is below target.", target),
			Actions: []string{
				"Schedule one-on-one tutoring session",
				"Provide additional practice materials",
				"Assign peer learning partner",
				"Consider modified assessment approach",
			},
		}
	case completed < minCompletedAssessments:
		return Intervention{
			Kind:    MonitoringNeeded,
			Summary: "Student has completed few assessments.",
			Actions: []string{
				"Ensure student is aware of all required assignments",
				"Check for technical difficulties with platform access",
				"Provide assessment calendar and reminders",
			},
		}
	default:
		return Intervention{
			Kind:    OnTrack,
			Summary: "Student is performing adequately across subjects.",
			Actions: []string{
				"Challenge with advanced material in strong subjects",
				"Encourage peer tutoring opportunities",
				"Consider project-based assessments to boost engagement",
			},
		}
	}
}

// FocusArea is one line of a weekly study plan.
type FocusArea struct {
	Area  string `json:"area"`
	Hours int    `json:"hours"`
}

const weakSubjectHours = 3

// WeeklyPlan allots three hours to each weak subject in priority order. With
// no weak subject it returns the enrichment week.
func WeeklyPlan(weak []model.Subject) []FocusArea {
	if len(weak) == 0 {
		return []FocusArea{
			{Area: "Advanced project work", Hours: 4},
			{Area: "Peer tutoring", Hours: 2},
			{Area: "Exploration of new topics", Hours: 3},
		}
	}
	subjects := append([]model.Subject(nil), weak...)
	model.SortSubjects(subjects)
	out := make([]FocusArea, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, FocusArea{Area: string(s), Hours: weakSubjectHours})
	}
	return out
}
