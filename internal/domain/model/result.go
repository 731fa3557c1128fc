package model

// Band is the qualitative level of a criterion sub-score.
type Band string

// Feedback bands by share of the criterion maximum.
const (
	BandNeedsRevision Band = "needs significant revision" // < 40%
	BandDeveloping    Band = "developing"                 // 40% - 74%
	BandProficient    Band = "proficient"                 // >= 75%
)

// QuestionResult is the outcome of one answer-key question.
type QuestionResult struct {
	ID       string  `json:"id"`
	Answered bool    `json:"answered"`
	Correct  bool    `json:"correct"`
	Credit   float64 `json:"credit"` // 0..1
}

// CriterionScore is the outcome of one rubric criterion. Questions is set
// only for answer_key criteria, in rubric order.
type CriterionScore struct {
	Criterion string           `json:"criterion"`
	Points    float64          `json:"points"`
	MaxPoints float64          `json:"max_points"`
	Weight    float64          `json:"weight"`
	Band      Band             `json:"band"`
	Feedback  string           `json:"feedback"`
	Questions []QuestionResult `json:"questions,omitempty"`
}

// ScoreResult is the immutable outcome of grading one submission.
// Regrading produces a new ScoreResult.
type ScoreResult struct {
	SubmissionID    string           `json:"submission_id"`
	StudentID       string           `json:"student_id"`
	RubricID        string           `json:"rubric_id"`
	Subject         Subject          `json:"subject"`
	Criteria        []CriterionScore `json:"criteria"` // rubric order
	Total           float64          `json:"total"`    // 0..100
	OverallFeedback string           `json:"overall_feedback"`
	LengthViolation bool             `json:"length_violation"`
}

// Points maps criterion name to awarded points.
func (r *ScoreResult) Points() map[string]float64 {
	out := make(map[string]float64, len(r.Criteria))
	for _, c := range r.Criteria {
		out[c.Criterion] = c.Points
	}
	return out
}

// Feedback maps criterion name to its qualitative feedback.
func (r *ScoreResult) Feedback() map[string]string {
	out := make(map[string]string, len(r.Criteria))
	for _, c := range r.Criteria {
		out[c.Criterion] = c.Feedback
	}
	return out
}
