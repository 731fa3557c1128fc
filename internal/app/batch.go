package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vinay2231/Edututor-AI/internal/adapters/mq/queue"
	"github.com/vinay2231/Edututor-AI/internal/adapters/mq/worker"
	"github.com/vinay2231/Edututor-AI/internal/adapters/repository"
	"github.com/vinay2231/Edututor-AI/internal/domain/model"
	"github.com/vinay2231/Edututor-AI/pkg/logger"
)

// RubricSource looks up published rubrics by id.
type RubricSource interface {
	Rubric(id string) (model.Rubric, error)
}

// BatchHandler grades queued jobs and persists the outcome. It reads and
// writes the student's vector without locking, which is safe only because
// the pool routes a student's jobs to a single worker.
type BatchHandler struct {
	engine  *Engine
	rubrics RubricSource
	store   repository.Store
}

// NewBatchHandler creates a worker handler backed by engine and store.
func NewBatchHandler(engine *Engine, rubrics RubricSource, store repository.Store) (*BatchHandler, error) {
	if store == nil {
		return nil, ErrNilRepository
	}
	if rubrics == nil {
		return nil, ErrNilRubrics
	}
	if engine == nil {
		engine = NewEngine()
	}
	return &BatchHandler{engine: engine, rubrics: rubrics, store: store}, nil
}

// Handle implements worker.Handler.
func (h *BatchHandler) Handle(ctx context.Context, job queue.Job) error { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	rubric, err := h.rubrics.Rubric(job.RubricID)
	if err != nil {
		return err
	}

	studentID := job.Submission.StudentID
	vector, err := h.store.Vector(ctx, studentID)
	if errors.Is(err, repository.ErrNotFound) {
		vector = model.PerformanceVector{}
	} else if err != nil {
		return fmt.Errorf("load vector for %s: %w", studentID, err)
	}

	out, err := h.engine.GradeSubmission(ctx, GradeRequest{
		Submission: job.Submission,
		Rubric:     rubric,
		Vector:     vector,
	})
	if err != nil {
		return err
	}
	if err := h.store.SaveResult(ctx, out.Result); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	if err := h.store.SaveVector(ctx, studentID, out.Vector); err != nil {
		return fmt.Errorf("save vector: %w", err)
	}
	return nil
}

// BatchConfig sizes a batch run.
type BatchConfig struct {
	Workers   int
	QueueSize int
	Logger    logger.Logger
}

// RunBatch grades jobs on a worker pool and returns once every job was
// handled. Jobs are numbered in slice order. A failing job is counted in
// the stats and does not stop the batch.
func RunBatch(ctx context.Context, h worker.Handler, jobs []queue.Job, cfg BatchConfig) (worker.Stats, error) {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	q := queue.NewInMemoryQueue(queue.WithCapacity(cfg.QueueSize))
	pool := worker.NewPool(cfg.Workers, q, h, worker.WithPoolLogger(log))
	pool.Start(ctx)

	log.Info(ctx, "batch started",
		logger.Int("jobs", len(jobs)),
		logger.Int("workers", pool.Size()),
	)
	for i := range jobs {
		job := jobs[i]
		job.Seq = i + 1
		if err := q.Put(ctx, job); err != nil {
			_ = q.Close()
			return pool.Stats(), fmt.Errorf("enqueue job %d: %w", job.Seq, err)
		}
	}
	_ = q.Close()

	if err := pool.Wait(ctx); err != nil {
		return pool.Stats(), err
	}
	stats := pool.Stats()
	log.Info(ctx, "batch finished",
		logger.Int("processed", int(stats.Processed)),
		logger.Int("failed", int(stats.Failed)),
	)
	return stats, nil
}
