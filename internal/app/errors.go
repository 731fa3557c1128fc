package app

import "errors"

var (
	// ErrNilRepository is returned when a batch handler is built without a store.
	ErrNilRepository = errors.New("repository is required")
	// ErrNilRubrics is returned when a batch handler is built without a rubric source.
	ErrNilRubrics = errors.New("rubric source is required")
)
