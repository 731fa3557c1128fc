package app

import (
	"github.com/vinay2231/Edututor-AI/internal/domain/mastery"
	"github.com/vinay2231/Edututor-AI/internal/domain/planner"
	"github.com/vinay2231/Edututor-AI/internal/domain/scoring"
	"github.com/vinay2231/Edututor-AI/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithScorer replaces the rubric scorer.
func WithScorer(s scoring.Scorer) Option {
	return func(e *Engine) {
		if s != nil {
			e.scorer = s
		}
	}
}

// WithEvaluator replaces the mastery evaluator.
func WithEvaluator(ev *mastery.Evaluator) Option {
	return func(e *Engine) {
		if ev != nil {
			e.evaluator = ev
		}
	}
}

// WithWeakThreshold builds the evaluator with the given weak threshold.
func WithWeakThreshold(threshold float64) Option {
	return func(e *Engine) {
		e.evaluator = mastery.NewEvaluator(mastery.WithWeakThreshold(threshold))
	}
}

// WithCatalogue sets the module catalogue used for recommendations.
func WithCatalogue(c planner.Catalogue) Option {
	return func(e *Engine) {
		e.planner = planner.New(c)
	}
}
