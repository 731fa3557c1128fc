// Package worker runs batch grading jobs on a pool of workers. Jobs of the
// same student always land on the same worker, so they are handled in
// enqueue order; different students proceed in parallel.
package worker

import (
	"context"
	"fmt"
	"hash/fnv"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vinay2231/Edututor-AI/internal/adapters/mq/queue"
	"github.com/vinay2231/Edututor-AI/pkg/logger"
	"github.com/vinay2231/Edututor-AI/pkg/metrics"
)

// Default worker configuration constants.
const (
	inboxSize           = 64
	poolShutdownTimeout = 30 * time.Second
)

// Handler processes a single job.
type Handler interface {
	Handle(ctx context.Context, job queue.Job) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, job queue.Job) error

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, job queue.Job) error { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	return f(ctx, job)
}

// Source is where the pool reads jobs from.
type Source interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// InMemoryWorker drains its inbox through the handler.
type InMemoryWorker struct {
	inbox   chan queue.Job
	handler Handler
	name    string
	logger  logger.Logger
	onStart func()
	onDone  func(err error)
	done    chan struct{}
}

// NewInMemoryWorker creates a worker with configuration options.
func NewInMemoryWorker(handler Handler, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		inbox:   make(chan queue.Job, inboxSize),
		handler: handler,
		name:    "worker",
		logger:  logger.Nop(),
		onStart: func() {},
		onDone:  func(error) {},
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.Named(w.name)
	return w
}

// Run handles jobs until the inbox is closed or ctx is canceled.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-w.inbox:
			if !ok {
				return
			}
			w.onDone(w.process(ctx, job))
		}
	}
}

func (w *InMemoryWorker) process(ctx context.Context, job queue.Job) error { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	w.onStart()
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	if err := w.handler.Handle(ctx, job); err != nil {
		metrics.RecordWorkerError()
		w.logger.Error(ctx, "job failed",
			logger.Int("seq", job.Seq),
			logger.String("student_id", job.Submission.StudentID),
			logger.String("rubric_id", job.RubricID),
			logger.Error(err),
		)
		return fmt.Errorf("job %d: %w", job.Seq, err)
	}
	return nil
}

// Stats summarises a pool run.
type Stats struct {
	Processed int64 `json:"processed"`
	Failed    int64 `json:"failed"`
}

// Pool routes jobs from a source to a fixed set of workers.
type Pool struct {
	workers []*InMemoryWorker
	source  Source
	logger  logger.Logger

	active    atomic.Int64
	processed atomic.Int64
	failed    atomic.Int64

	startOnce sync.Once
	done      chan struct{}
}

// NewPool creates a worker pool. A non-positive workerCount uses one worker
// per CPU.
func NewPool(workerCount int, source Source, handler Handler, opts ...PoolOption) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}
	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		source:  source,
		logger:  logger.Nop(),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}

	for i := 0; i < workerCount; i++ {
		p.workers[i] = NewInMemoryWorker(handler,
			WithName("worker-"+strconv.Itoa(i)),
			WithLogger(p.logger),
			withHooks(p.jobStarted, p.jobFinished),
		)
	}
	metrics.UpdateWorkerCount(workerCount)
	metrics.UpdateWorkerActive(0)
	return p
}

// Route returns the worker index for a student id.
func Route(studentID string, workers int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(studentID))
	return int(h.Sum32() % uint32(workers)) //nolint:gosec // workers is positive
}

// Start launches the workers and the dispatcher. It is idempotent.
func (p *Pool) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		var wg sync.WaitGroup
		for _, w := range p.workers {
			wg.Add(1)
			go func(w *InMemoryWorker) {
				defer wg.Done()
				w.Run(ctx)
			}(w)
		}
		go func() {
			p.dispatch(ctx)
			wg.Wait()
			close(p.done)
		}()
	})
}

func (p *Pool) dispatch(ctx context.Context) {
	defer func() {
		for _, w := range p.workers {
			close(w.inbox)
		}
	}()
	jobs := p.source.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			w := p.workers[Route(job.Submission.StudentID, len(p.workers))]
			select {
			case w.inbox <- job:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (p *Pool) jobStarted() {
	metrics.UpdateWorkerActive(int(p.active.Add(1)))
}

func (p *Pool) jobFinished(err error) {
	metrics.UpdateWorkerActive(int(p.active.Add(-1)))
	p.processed.Add(1)
	if err != nil {
		p.failed.Add(1)
	}
}

// Wait blocks until the source is drained and every worker has exited, or
// ctx is done.
func (p *Pool) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for workers: %w", ctx.Err())
	}
}

// Shutdown closes the source if it can be closed and waits for the workers
// to drain it.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.source.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()
	if err := p.Wait(shutdownCtx); err != nil {
		p.logger.Warn(ctx, "worker shutdown timed out", logger.Error(err))
		return err
	}
	return nil
}

// Stats returns the processed and failed job counts so far.
func (p *Pool) Stats() Stats {
	return Stats{Processed: p.processed.Load(), Failed: p.failed.Load()}
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}
