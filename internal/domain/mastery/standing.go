package mastery

import (
	"math"
	"sort"

	"github.com/vinay2231/Edututor-AI/internal/domain/model"
)

// StandingStatus classifies a student's average score.
type StandingStatus string

// Standing statuses.
const (
	StatusNoData    StandingStatus = "no-data"
	StatusAtRisk    StandingStatus = "at-risk"
	StatusOnTrack   StandingStatus = "on-track"
	StatusExcellent StandingStatus = "excellent"
)

const excellentAverage = 90

// Standing is a student's average across the subjects present.
type Standing struct {
	Average float64        `json:"average"`
	Status  StandingStatus `json:"status"`
}

// Standing averages the clamped scores of v. Below the weak threshold is
// at-risk, above 90 is excellent. The status uses the exact average; only
// the reported Average is rounded.
func (e *Evaluator) Standing(v model.PerformanceVector) Standing {
	if len(v) == 0 {
		return Standing{Status: StatusNoData}
	}
	var sum float64
	for _, subject := range v.Subjects() {
		clamped, _ := clampScore(subject, v[subject])
		sum += clamped
	}
	avg := sum / float64(len(v))

	st := Standing{Average: round2(avg), Status: StatusOnTrack}
	switch {
	case avg < e.threshold:
		st.Status = StatusAtRisk
	case avg > excellentAverage:
		st.Status = StatusExcellent
	}
	return st
}

// ClassOverview summarises many students' vectors.
type ClassOverview struct {
	Students        int                       `json:"students"`
	ClassAverage    float64                   `json:"class_average"`
	SubjectAverages map[model.Subject]float64 `json:"subject_averages"`
	AtRisk          []string                  `json:"at_risk"` // sorted student ids
	Excellent       int                       `json:"excellent"`
}

// AtRiskCount returns the number of at-risk students.
func (o ClassOverview) AtRiskCount() int {
	return len(o.AtRisk)
}

// Summarize builds a class overview from vectors keyed by student id.
// Students without any score count towards Students only.
func (e *Evaluator) Summarize(vectors map[string]model.PerformanceVector) ClassOverview {
	out := ClassOverview{
		Students:        len(vectors),
		SubjectAverages: make(map[model.Subject]float64),
		AtRisk:          []string{},
	}

	var (
		sumAvg    float64
		withData  int
		subjSum   = make(map[model.Subject]float64)
		subjCount = make(map[model.Subject]int)
	)
	for student, v := range vectors {
		st := e.Standing(v)
		switch st.Status {
		case StatusNoData:
			continue
		case StatusAtRisk:
			out.AtRisk = append(out.AtRisk, student)
		case StatusExcellent:
			out.Excellent++
		}
		sumAvg += st.Average
		withData++
		for subject, score := range v {
			clamped, _ := clampScore(subject, score)
			subjSum[subject] += clamped
			subjCount[subject]++
		}
	}

	if withData > 0 {
		out.ClassAverage = round2(sumAvg / float64(withData))
	}
	for subject, sum := range subjSum {
		out.SubjectAverages[subject] = round2(sum / float64(subjCount[subject]))
	}
	sort.Strings(out.AtRisk)
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
