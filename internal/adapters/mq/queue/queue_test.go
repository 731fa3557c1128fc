package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/vinay2231/Edututor-AI/internal/domain/model"
)

func job(student string, seq int) Job {
	return Job{
		Seq:      seq,
		RubricID: "essay-default",
		Submission: model.Submission{
			StudentID:    student,
			AssessmentID: fmt.Sprintf("asm-%d", seq),
			Text:         "An answer.",
		},
	}
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
	if err := q.Enqueue(ctx, job("ana", 1)); err != nil {
		t.Fatalf("expected enqueue to succeed: %v", err)
	}
	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	got := <-q.Dequeue(ctx)
	if got.Seq != 1 || got.Submission.StudentID != "ana" {
		t.Errorf("unexpected job: %+v", got)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	_ = q.Enqueue(ctx, job("a", 1))
	_ = q.Enqueue(ctx, job("b", 2))
	if err := q.Enqueue(ctx, job("c", 3)); !errors.Is(err, ErrFull) {
		t.Errorf("expected ErrFull, got %v", err)
	}
	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_PutWaitsForSpace(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(1))
	ctx := context.Background()
	_ = q.Enqueue(ctx, job("a", 1))

	done := make(chan error, 1)
	go func() { done <- q.Put(ctx, job("b", 2)) }()

	select {
	case err := <-done:
		t.Fatalf("Put returned before space was available: %v", err)
	case <-time.After(20 * time.Millisecond):
	}

	out := q.Dequeue(ctx)
	<-out
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := <-out; got.Seq != 2 {
		t.Errorf("expected job 2, got %+v", got)
	}
}

func TestInMemoryQueue_PutHonoursContext(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(1))
	_ = q.Enqueue(context.Background(), job("a", 1))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := q.Put(ctx, job("b", 2)); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestInMemoryQueue_Close(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(4))
	ctx := context.Background()
	_ = q.Enqueue(ctx, job("a", 1))
	_ = q.Enqueue(ctx, job("b", 2))

	if err := q.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if err := q.Close(); err != nil {
		t.Fatalf("second close should be a no-op: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to report closed")
	}
	if err := q.Enqueue(ctx, job("c", 3)); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if err := q.Put(ctx, job("c", 3)); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}

	var seqs []int
	for j := range q.Dequeue(ctx) {
		seqs = append(seqs, j.Seq)
	}
	if len(seqs) != 2 || seqs[0] != 1 || seqs[1] != 2 {
		t.Errorf("backlog should drain in order after close, got %v", seqs)
	}
}

func TestInMemoryQueue_ConcurrentAccess(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(100))
	ctx := context.Background()

	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				if err := q.Enqueue(ctx, job(fmt.Sprintf("s%d", g), i)); err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		}(g)
	}
	wg.Wait()
	if l := q.Len(ctx); l != 100 {
		t.Errorf("expected 100 jobs, got %d", l)
	}
}
