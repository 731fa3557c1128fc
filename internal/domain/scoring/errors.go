package scoring

import "errors"

// Sentinel kinds for scoring errors. Both are caller-input validation
// failures and are never retried.
var (
	ErrInvalidRubric   = errors.New("invalid rubric")
	ErrEmptySubmission = errors.New("empty submission")
)
