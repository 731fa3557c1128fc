package model

// Heuristic selects how a criterion is scored from the response text or,
// for answer_key, from the structured answers.
type Heuristic string

// Supported heuristics.
const (
	HeuristicKeywords  Heuristic = "keywords"
	HeuristicStructure Heuristic = "structure"
	HeuristicLength    Heuristic = "length"
	HeuristicArgument  Heuristic = "argument"
	HeuristicEvidence  Heuristic = "evidence"
	HeuristicMechanics Heuristic = "mechanics"
	HeuristicAnswerKey Heuristic = "answer_key"
)

// QuestionKind is the response format of a structured question.
type QuestionKind string

// Supported question kinds.
const (
	QuestionMultipleChoice QuestionKind = "multiple_choice"
	QuestionTrueFalse      QuestionKind = "true_false"
	QuestionShortAnswer    QuestionKind = "short_answer"
	QuestionNumeric        QuestionKind = "numeric"
)

// Valid reports whether k is a supported kind.
func (k QuestionKind) Valid() bool {
	switch k {
	case QuestionMultipleChoice, QuestionTrueFalse, QuestionShortAnswer, QuestionNumeric:
		return true
	}
	return false
}

// Question is one auto-graded item of an answer_key criterion. Any of
// Answers is accepted; Tolerance is the absolute slack for numeric answers.
type Question struct {
	ID        string       `json:"id" yaml:"id"`
	Kind      QuestionKind `json:"kind" yaml:"kind"`
	Prompt    string       `json:"prompt,omitempty" yaml:"prompt"`
	Answers   []string     `json:"answers" yaml:"answers"`
	Tolerance float64      `json:"tolerance,omitempty" yaml:"tolerance"`
}

// Criterion is one weighted rubric line.
type Criterion struct {
	Name        string     `json:"name" yaml:"name"`
	Weight      float64    `json:"weight" yaml:"weight"` // 0..1, sums to 1 across a rubric
	Description string     `json:"description" yaml:"description"`
	MinPoints   float64    `json:"min_points" yaml:"min_points"`
	MaxPoints   float64    `json:"max_points" yaml:"max_points"`
	Heuristic   Heuristic  `json:"heuristic" yaml:"heuristic"`
	Signals     []string   `json:"signals,omitempty" yaml:"signals"` // keywords for the keywords heuristic
	Questions   []Question `json:"questions,omitempty" yaml:"questions"`
}

// WordRange bounds the expected response length. A zero Max means unbounded.
type WordRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// IsSet reports whether the range declares any bound.
func (r WordRange) IsSet() bool {
	return r.Min > 0 || r.Max > 0
}

// Contains reports whether n words satisfy the range.
func (r WordRange) Contains(n int) bool {
	if n < r.Min {
		return false
	}
	if r.Max > 0 && n > r.Max {
		return false
	}
	return true
}

// Rubric is an ordered, weighted set of criteria. Immutable once published.
type Rubric struct {
	ID        string      `json:"id" yaml:"id"`
	Title     string      `json:"title" yaml:"title"`
	Subject   Subject     `json:"subject" yaml:"subject"`
	Criteria  []Criterion `json:"criteria" yaml:"criteria"`
	WordRange WordRange   `json:"word_range" yaml:"word_range"`
}

// TotalWeight sums the criterion weights.
func (r *Rubric) TotalWeight() float64 {
	var sum float64
	for _, c := range r.Criteria {
		sum += c.Weight
	}
	return sum
}
