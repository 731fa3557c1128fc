// Package app wires the grading, mastery and planning components into the
// assessment engine used by the presentation layer and the batch pipeline.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vinay2231/Edututor-AI/internal/domain/mastery"
	"github.com/vinay2231/Edututor-AI/internal/domain/model"
	"github.com/vinay2231/Edututor-AI/internal/domain/planner"
	"github.com/vinay2231/Edututor-AI/internal/domain/scoring"
	"github.com/vinay2231/Edututor-AI/pkg/logger"
	"github.com/vinay2231/Edututor-AI/pkg/metrics"
)

// GradeRequest carries a submission, the rubric to grade it against and the
// student's current performance vector.
type GradeRequest struct {
	Submission model.Submission        `json:"submission"`
	Rubric     model.Rubric            `json:"rubric"`
	Vector     model.PerformanceVector `json:"vector"`
}

// GradeOutcome is the graded result and the updated vector. The request
// vector is left untouched.
type GradeOutcome struct {
	Result model.ScoreResult       `json:"result"`
	Vector model.PerformanceVector `json:"vector"`
}

// RecommendRequest carries what the engine needs to plan next steps.
type RecommendRequest struct {
	Vector               model.PerformanceVector `json:"vector"`
	LearningStyle        model.LearningStyle     `json:"learning_style"`
	CompletedAssessments int                     `json:"completed_assessments"`
}

// Report is everything the presentation layer shows a student after
// evaluation.
type Report struct {
	Evaluation      mastery.Evaluation     `json:"evaluation"`
	Standing        mastery.Standing       `json:"standing"`
	Recommendations []model.Recommendation `json:"recommendations"`
	Intervention    planner.Intervention   `json:"intervention"`
	WeeklyPlan      []planner.FocusArea    `json:"weekly_plan"`
	StyleProfile    planner.StyleProfile   `json:"style_profile"`
}

// Engine is the assessment facade. It holds no student data and is safe for
// concurrent use.
type Engine struct {
	scorer    scoring.Scorer
	evaluator *mastery.Evaluator
	planner   *planner.Planner
	logger    logger.Logger
}

// NewEngine constructs an engine. Without WithCatalogue every recommendation
// falls back to a generic practice module.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		scorer:    scoring.NewRubricScorer(),
		evaluator: mastery.NewEvaluator(),
		planner:   planner.New(nil),
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.Named("engine")
	return e
}

// GradeSubmission scores the submission and overwrites the rubric subject in
// a copy of the vector with the new total.
func (e *Engine) GradeSubmission(ctx context.Context, req GradeRequest) (GradeOutcome, error) { //nolint:gocritic // hugeParam: request is a value by contract
	if err := ctx.Err(); err != nil {
		return GradeOutcome{}, err
	}
	start := time.Now()
	result, err := e.scorer.Score(req.Submission, req.Rubric)
	metrics.RecordGradingLatency(float64(time.Since(start).Microseconds()) / 1000)
	if err != nil {
		metrics.RecordGradingError(gradingErrorReason(err))
		e.logger.Warn(ctx, "grading rejected",
			logger.String("student_id", req.Submission.StudentID),
			logger.String("rubric_id", req.Rubric.ID),
			logger.Error(err),
		)
		return GradeOutcome{}, fmt.Errorf("grade submission: %w", err)
	}

	metrics.RecordGraded(string(result.Subject), result.Total, result.LengthViolation)
	e.logger.Debug(ctx, "submission graded",
		logger.String("submission_id", result.SubmissionID),
		logger.String("student_id", result.StudentID),
		logger.String("subject", string(result.Subject)),
		logger.Float64("total", result.Total),
		logger.Bool("length_violation", result.LengthViolation),
	)

	return GradeOutcome{
		Result: result,
		Vector: req.Vector.Merge(req.Rubric.Subject, result.Total),
	}, nil
}

// Recommend evaluates the vector and plans recommendations for the learning
// style.
func (e *Engine) Recommend(ctx context.Context, req RecommendRequest) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	profile, err := planner.Profile(req.LearningStyle)
	if err != nil {
		return Report{}, fmt.Errorf("recommend: %w", err)
	}

	eval := e.evaluator.Evaluate(req.Vector)
	metrics.RecordMasteryWarnings(len(eval.Warnings))
	for _, w := range eval.Warnings {
		fields := []logger.Field{
			logger.String("subject", string(w.Subject)),
			logger.String("reason", string(w.Reason)),
			logger.Float64("clamped", w.Clamped),
		}
		if w.Original != nil {
			fields = append(fields, logger.Float64("original", *w.Original))
		}
		e.logger.Warn(ctx, "score out of range", fields...)
	}
	for _, s := range eval.Weak {
		metrics.RecordWeakSubject(string(s))
	}

	recs, err := e.planner.Plan(eval.Levels, eval.Weak, req.LearningStyle)
	if err != nil {
		return Report{}, fmt.Errorf("recommend: %w", err)
	}
	enrichment := false
	for _, r := range recs {
		metrics.RecordRecommendation(string(r.Tier), string(r.Kind))
		if r.Kind == model.KindEnrichment {
			enrichment = true
		}
	}
	if enrichment {
		metrics.RecordEnrichmentPlan()
	}

	e.logger.Debug(ctx, "recommendations planned",
		logger.Int("subjects", len(eval.Levels)),
		logger.Int("weak", len(eval.Weak)),
		logger.Int("recommendations", len(recs)),
		logger.Bool("enrichment", enrichment),
	)

	return Report{
		Evaluation:      eval,
		Standing:        e.evaluator.Standing(req.Vector),
		Recommendations: recs,
		Intervention:    planner.Interventions(eval.Levels, eval.Weak, req.CompletedAssessments),
		WeeklyPlan:      planner.WeeklyPlan(eval.Weak),
		StyleProfile:    profile,
	}, nil
}

// ClassOverview summarises vectors keyed by student id.
func (e *Engine) ClassOverview(ctx context.Context, vectors map[string]model.PerformanceVector) (mastery.ClassOverview, error) {
	if err := ctx.Err(); err != nil {
		return mastery.ClassOverview{}, err
	}
	overview := e.evaluator.Summarize(vectors)
	e.logger.Debug(ctx, "class overview built",
		logger.Int("students", overview.Students),
		logger.Int("at_risk", overview.AtRiskCount()),
	)
	return overview, nil
}

func gradingErrorReason(err error) string {
	switch {
	case errors.Is(err, scoring.ErrInvalidRubric):
		return "invalid_rubric"
	case errors.Is(err, scoring.ErrEmptySubmission):
		return "empty_submission"
	default:
		return "other"
	}
}
