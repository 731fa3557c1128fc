// Package queue provides the bounded in-memory queue that feeds the batch
// grading workers.
package queue

import (
	"context"
	"sync"

	"github.com/vinay2231/Edututor-AI/internal/domain/model"
	"github.com/vinay2231/Edututor-AI/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultQueueCapacity = 10_000
)

// Job is one submission to grade against a published rubric.
type Job struct {
	Seq        int              `json:"seq" yaml:"-"` // position in the batch
	RubricID   string           `json:"rubric_id" yaml:"rubric_id"`
	Submission model.Submission `json:"submission" yaml:"submission"`
}

// Queue provides enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a job without blocking. Returns ErrFull or ErrClosed.
	Enqueue(ctx context.Context, j Job) error

	// Put adds a job, waiting for space until ctx is done.
	Put(ctx context.Context, j Job) error

	// Dequeue returns a channel that receives jobs in FIFO order and is
	// closed after Close once the backlog is drained.
	Dequeue(ctx context.Context) <-chan Job

	// Len returns the current number of queued jobs.
	Len(ctx context.Context) int

	// Close stops accepting jobs.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	jobs     chan Job
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.jobs = make(chan Job, q.capacity)
	metrics.UpdateQueue(0, q.capacity)
	return q
}

// Enqueue implements Queue.Enqueue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, j Job) error { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		metrics.RecordQueueEnqueueError()
		return err
	}
	select {
	case q.jobs <- j:
		q.enqueued()
		return nil
	default:
		metrics.RecordQueueEnqueueError()
		return ErrFull
	}
}

// Put implements Queue.Put. Close waits for blocked Put calls to return.
func (q *InMemoryQueue) Put(ctx context.Context, j Job) error { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		return ErrClosed
	}
	select {
	case q.jobs <- j:
		q.enqueued()
		return nil
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError()
		return ctx.Err()
	}
}

func (q *InMemoryQueue) enqueued() {
	metrics.RecordQueueEnqueue()
	metrics.UpdateQueue(len(q.jobs), q.capacity)
}

// Dequeue implements Queue.Dequeue.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Job {
	out := make(chan Job)
	go func() {
		defer close(out)
		for j := range q.jobs {
			select {
			case out <- j:
				metrics.RecordQueueDequeue()
				metrics.UpdateQueue(len(q.jobs), q.capacity)
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len implements Queue.Len.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return len(q.jobs)
}

// Close implements Queue.Close. Closing twice is a no-op.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	close(q.jobs)
	q.closed = true
	return nil
}

// IsClosed implements Queue.IsClosed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
