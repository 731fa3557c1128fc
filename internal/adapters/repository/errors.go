package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound       = errors.New("student not found")
	ErrInvalidStudent = errors.New("invalid student id")
)
