// Package scoring grades student responses against weighted rubrics.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/vinay2231/Edututor-AI/internal/domain/model"
)

// Default scoring configuration constants.
const (
	weightTolerance  = 1e-6
	maxTotal         = 100
	defaultMinWords  = 150
	defaultMaxWords  = 600
	excellentTotal   = 85
	goodTotal        = 75
	revisionFraction = 0.40
	proficientFrac   = 0.75
)

// Scorer grades a submission against a rubric. Implementations must be
// pure: identical inputs produce identical results.
type Scorer interface {
	Score(sub model.Submission, rubric model.Rubric) (model.ScoreResult, error)
}

// RubricScorer implements Scorer with deterministic text heuristics.
type RubricScorer struct {
	defaultRange model.WordRange
}

// NewRubricScorer creates a scorer with configuration options.
func NewRubricScorer(opts ...Option) *RubricScorer {
	s := &RubricScorer{
		defaultRange: model.WordRange{Min: defaultMinWords, Max: defaultMaxWords},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score validates the rubric, then the submission, and grades each criterion
// in rubric order.
func (s *RubricScorer) Score(sub model.Submission, rubric model.Rubric) (model.ScoreResult, error) {
	if err := ValidateRubric(&rubric); err != nil {
		return model.ScoreResult{}, err
	}
	if !sub.HasResponse() {
		return model.ScoreResult{}, fmt.Errorf("%w: submission %q has no text or answers", ErrEmptySubmission, sub.SubmissionID())
	}

	words := sub.Words()
	doc := newDocument(sub.Text, words)
	doc.answers = sub.Answers
	lengthTarget := rubric.WordRange
	if !lengthTarget.IsSet() {
		lengthTarget = s.defaultRange
	}

	criteria := make([]model.CriterionScore, 0, len(rubric.Criteria))
	total := 0.0
	for i := range rubric.Criteria {
		c := &rubric.Criteria[i]
		a := s.assess(doc, c, lengthTarget)

		span := c.MaxPoints - c.MinPoints
		points := round2(clamp(c.MinPoints+a.fraction*span, c.MinPoints, c.MaxPoints))
		ratio := points / c.MaxPoints
		band := bandFor(ratio)

		criteria = append(criteria, model.CriterionScore{
			Criterion: c.Name,
			Points:    points,
			MaxPoints: c.MaxPoints,
			Weight:    c.Weight,
			Band:      band,
			Feedback:  criterionFeedback(c, band, a),
			Questions: a.questions,
		})
		total += ratio * c.Weight * maxTotal
	}

	violation := rubric.WordRange.IsSet() && !rubric.WordRange.Contains(words)
	total = round2(clamp(total, 0, maxTotal))

	return model.ScoreResult{
		SubmissionID:    sub.SubmissionID(),
		StudentID:       sub.StudentID,
		RubricID:        rubric.ID,
		Subject:         rubric.Subject,
		Criteria:        criteria,
		Total:           total,
		OverallFeedback: overallFeedback(total, criteria, violation, words, rubric.WordRange),
		LengthViolation: violation,
	}, nil
}

// ValidateRubric checks the structure of a rubric.
func ValidateRubric(r *model.Rubric) error {
	if len(r.Criteria) == 0 {
		return fmt.Errorf("%w: rubric %q has no criteria", ErrInvalidRubric, r.ID)
	}
	names := make(map[string]struct{}, len(r.Criteria))
	questions := make(map[string]struct{})
	sum := 0.0
	for i, c := range r.Criteria {
		name := strings.TrimSpace(c.Name)
		switch {
		case name == "":
			return fmt.Errorf("%w: criterion %d has no name", ErrInvalidRubric, i)
		case !finite(c.Weight) || c.Weight < 0 || c.Weight > 1:
			return fmt.Errorf("%w: criterion %q weight %v outside [0,1]", ErrInvalidRubric, name, c.Weight)
		case !finite(c.MinPoints) || !finite(c.MaxPoints) || c.MinPoints < 0 || c.MinPoints > c.MaxPoints:
			return fmt.Errorf("%w: criterion %q points range [%v,%v]", ErrInvalidRubric, name, c.MinPoints, c.MaxPoints)
		case c.MaxPoints <= 0:
			return fmt.Errorf("%w: criterion %q max points must be positive", ErrInvalidRubric, name)
		}
		if _, dup := names[name]; dup {
			return fmt.Errorf("%w: duplicate criterion %q", ErrInvalidRubric, name)
		}
		names[name] = struct{}{}
		if c.Heuristic == model.HeuristicAnswerKey {
			if err := validateQuestions(&r.Criteria[i], name, questions); err != nil {
				return err
			}
		}
		sum += c.Weight
	}
	if math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("%w: weights sum to %v, want 1", ErrInvalidRubric, sum)
	}
	if r.WordRange.Min < 0 || r.WordRange.Max < 0 || (r.WordRange.Max > 0 && r.WordRange.Min > r.WordRange.Max) {
		return fmt.Errorf("%w: word range [%d,%d]", ErrInvalidRubric, r.WordRange.Min, r.WordRange.Max)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func bandFor(ratio float64) model.Band {
	switch {
	case ratio < revisionFraction:
		return model.BandNeedsRevision
	case ratio < proficientFrac:
		return model.BandDeveloping
	default:
		return model.BandProficient
	}
}
