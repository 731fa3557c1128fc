// Package mastery converts subject scores into mastery levels and weak-area
// flags.
package mastery

import (
	"math"

	"github.com/vinay2231/Edututor-AI/internal/domain/model"
)

// Mastery constants.
const (
	DefaultWeakThreshold = 70
	MaxLevel             = 10
	minScore             = 0
	maxScore             = 100
)

// WarningReason says why a score was clamped.
type WarningReason string

// Warning reasons.
const (
	ReasonBelowRange WarningReason = "below_range"
	ReasonAboveRange WarningReason = "above_range"
	ReasonNotANumber WarningReason = "not_a_number"
)

// Warning reports a score that was outside [0,100] and had to be clamped.
// Original is nil when the score was NaN or infinite, so a warning always
// encodes.
type Warning struct {
	Subject  model.Subject `json:"subject"`
	Reason   WarningReason `json:"reason"`
	Original *float64      `json:"original"`
	Clamped  float64       `json:"clamped"`
}

// Evaluation is the outcome of evaluating a performance vector. Subjects
// absent from the vector are absent from Levels and Weak.
type Evaluation struct {
	Levels   map[model.Subject]int `json:"levels"`
	Weak     []model.Subject       `json:"weak"` // priority order
	Warnings []Warning             `json:"warnings,omitempty"`
}

// IsWeak reports whether subject was flagged weak.
func (e Evaluation) IsWeak(subject model.Subject) bool {
	for _, s := range e.Weak {
		if s == subject {
			return true
		}
	}
	return false
}

// Option applies a configuration option to the Evaluator.
type Option func(*Evaluator)

// WithWeakThreshold sets the score below which a subject is weak.
func WithWeakThreshold(threshold float64) Option {
	return func(e *Evaluator) {
		if threshold > minScore && threshold <= maxScore {
			e.threshold = threshold
		}
	}
}

// Evaluator derives mastery levels. It is stateless and safe for concurrent use.
type Evaluator struct {
	threshold float64
}

// NewEvaluator creates an evaluator with configuration options.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{threshold: DefaultWeakThreshold}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WeakThreshold returns the configured weak threshold.
func (e *Evaluator) WeakThreshold() float64 {
	return e.threshold
}

// Evaluate maps every subject in v to its level and weak flag.
func (e *Evaluator) Evaluate(v model.PerformanceVector) Evaluation {
	out := Evaluation{
		Levels: make(map[model.Subject]int, len(v)),
		Weak:   []model.Subject{},
	}
	for _, subject := range v.Subjects() {
		score, warn := clampScore(subject, v[subject])
		if warn != nil {
			out.Warnings = append(out.Warnings, *warn)
		}
		out.Levels[subject] = Level(score)
		if score < e.threshold {
			out.Weak = append(out.Weak, subject)
		}
	}
	return out
}

// Level returns clamp(floor(score/10), 0, 10).
func Level(score float64) int {
	switch {
	case math.IsNaN(score) || score < minScore:
		return 0
	case score >= maxScore:
		return MaxLevel
	}
	level := int(math.Floor(score / 10))
	if level < 0 {
		return 0
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

func clampScore(subject model.Subject, score float64) (float64, *Warning) {
	w := &Warning{Subject: subject}
	switch {
	case math.IsNaN(score):
		w.Reason, w.Clamped = ReasonNotANumber, minScore
	case score < minScore:
		w.Reason, w.Clamped = ReasonBelowRange, minScore
	case score > maxScore:
		w.Reason, w.Clamped = ReasonAboveRange, maxScore
	default:
		return score, nil
	}
	if !math.IsInf(score, 0) && !math.IsNaN(score) {
		original := score
		w.Original = &original
	}
	return w.Clamped, w
}
