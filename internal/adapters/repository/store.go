// Package repository implements the data provider that holds graded results
// and per-student performance vectors.
package repository

import (
	"context"

	"github.com/vinay2231/Edututor-AI/internal/domain/model"
)

// Store provides snapshot reads and writes of student assessment state.
// Every read returns a copy; callers never share memory with the store.
type Store interface {
	// SaveResult records a graded result. A result with the same submission
	// id replaces the earlier one.
	SaveResult(ctx context.Context, result model.ScoreResult) error

	// Results returns a student's results in save order.
	// Returns ErrNotFound if the student has none.
	Results(ctx context.Context, studentID string) ([]model.ScoreResult, error)

	// SaveVector replaces a student's performance vector.
	SaveVector(ctx context.Context, studentID string, v model.PerformanceVector) error

	// Vector returns a student's performance vector.
	// Returns ErrNotFound if the student is unknown.
	Vector(ctx context.Context, studentID string) (model.PerformanceVector, error)

	// Vectors returns every stored vector keyed by student id.
	Vectors(ctx context.Context) map[string]model.PerformanceVector

	// Students returns known student ids in ascending order.
	Students(ctx context.Context) []string

	// Count returns the number of known students.
	Count(ctx context.Context) int
}
