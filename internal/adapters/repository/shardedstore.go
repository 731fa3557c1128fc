package repository

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"sync"
	"time"

	"github.com/vinay2231/Edututor-AI/internal/domain/model"
	"github.com/vinay2231/Edututor-AI/pkg/metrics"
)

const defaultShardCount = 16

type shard struct {
	mu      sync.RWMutex
	results map[string][]model.ScoreResult
	vectors map[string]model.PerformanceVector
}

// ShardedStore is an in-memory Store. Students are spread over shards by
// FNV-1a hash of their id; each shard has its own RW lock.
type ShardedStore struct {
	shardCount int
	shards     []*shard
}

// NewShardedStore constructs a store with configuration options.
func NewShardedStore(opts ...Option) *ShardedStore {
	s := &ShardedStore{shardCount: defaultShardCount}
	for _, opt := range opts {
		opt(s)
	}
	s.shards = make([]*shard, s.shardCount)
	for i := range s.shards {
		s.shards[i] = &shard{
			results: make(map[string][]model.ScoreResult),
			vectors: make(map[string]model.PerformanceVector),
		}
	}
	metrics.UpdateRepositoryShards(s.shardCount)
	return s
}

// ShardFor returns the shard index for a student id.
func ShardFor(studentID string, shards int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(studentID))
	return int(h.Sum32() % uint32(shards)) //nolint:gosec // shards is positive
}

func (s *ShardedStore) shard(studentID string) *shard {
	return s.shards[ShardFor(studentID, s.shardCount)]
}

// SaveResult implements Store.SaveResult.
func (s *ShardedStore) SaveResult(ctx context.Context, result model.ScoreResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if result.StudentID == "" {
		return fmt.Errorf("%w: result %q has no student", ErrInvalidStudent, result.SubmissionID)
	}
	start := time.Now()
	defer recordWrite(start)

	result = cloneResult(result)
	sh := s.shard(result.StudentID)
	sh.mu.Lock()
	list := sh.results[result.StudentID]
	replaced := false
	for i := range list {
		if list[i].SubmissionID == result.SubmissionID {
			list[i] = result
			replaced = true
			break
		}
	}
	if !replaced {
		sh.results[result.StudentID] = append(list, result)
	}
	sh.mu.Unlock()

	if !replaced {
		s.publishCounts()
	}
	return nil
}

// Results implements Store.Results.
func (s *ShardedStore) Results(ctx context.Context, studentID string) ([]model.ScoreResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sh := s.shard(studentID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	list, ok := sh.results[studentID]
	if !ok || len(list) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, studentID)
	}
	out := make([]model.ScoreResult, len(list))
	for i := range list {
		out[i] = cloneResult(list[i])
	}
	return out, nil
}

// SaveVector implements Store.SaveVector.
func (s *ShardedStore) SaveVector(ctx context.Context, studentID string, v model.PerformanceVector) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if studentID == "" {
		return ErrInvalidStudent
	}
	start := time.Now()
	defer recordWrite(start)

	sh := s.shard(studentID)
	sh.mu.Lock()
	_, existed := sh.vectors[studentID]
	sh.vectors[studentID] = v.Clone()
	sh.mu.Unlock()

	if !existed {
		s.publishCounts()
	}
	return nil
}

// Vector implements Store.Vector.
func (s *ShardedStore) Vector(ctx context.Context, studentID string) (model.PerformanceVector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sh := s.shard(studentID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	v, ok := sh.vectors[studentID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, studentID)
	}
	return v.Clone(), nil
}

// Vectors implements Store.Vectors. Each shard is copied under its own read
// lock, so the snapshot is consistent per student.
func (s *ShardedStore) Vectors(_ context.Context) map[string]model.PerformanceVector {
	out := make(map[string]model.PerformanceVector)
	for _, sh := range s.shards {
		sh.mu.RLock()
		for id, v := range sh.vectors {
			out[id] = v.Clone()
		}
		sh.mu.RUnlock()
	}
	return out
}

// Students implements Store.Students.
func (s *ShardedStore) Students(_ context.Context) []string {
	seen := make(map[string]struct{})
	for _, sh := range s.shards {
		sh.mu.RLock()
		for id := range sh.vectors {
			seen[id] = struct{}{}
		}
		for id := range sh.results {
			seen[id] = struct{}{}
		}
		sh.mu.RUnlock()
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Count implements Store.Count.
func (s *ShardedStore) Count(ctx context.Context) int {
	return len(s.Students(ctx))
}

func (s *ShardedStore) publishCounts() {
	var results, vectors int
	for _, sh := range s.shards {
		sh.mu.RLock()
		for _, list := range sh.results {
			results += len(list)
		}
		vectors += len(sh.vectors)
		sh.mu.RUnlock()
	}
	metrics.UpdateRepositoryRecords("results", results)
	metrics.UpdateRepositoryRecords("vectors", vectors)
}

func recordWrite(start time.Time) {
	metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Microseconds()) / 1000)
}

func cloneResult(r model.ScoreResult) model.ScoreResult {
	r.Criteria = append([]model.CriterionScore(nil), r.Criteria...)
	return r
}
