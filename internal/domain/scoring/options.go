package scoring

import "github.com/vinay2231/Edututor-AI/internal/domain/model"

// Option applies a configuration option to the RubricScorer.
type Option func(*RubricScorer)

// WithDefaultWordRange sets the length target used by the length heuristic
// when a rubric declares no word range.
func WithDefaultWordRange(r model.WordRange) Option {
	return func(s *RubricScorer) {
		if r.IsSet() && (r.Max == 0 || r.Min <= r.Max) {
			s.defaultRange = r
		}
	}
}
