package catalogue

import "errors"

// Sentinel errors for catalogue and rubric loading.
var (
	ErrInvalidCatalogue = errors.New("invalid catalogue")
	ErrRubricNotFound   = errors.New("rubric not found")
)
