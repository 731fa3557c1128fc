package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vinay2231/Edututor-AI/internal/adapters/mq/queue"
	"github.com/vinay2231/Edututor-AI/internal/adapters/mq/worker"
	"github.com/vinay2231/Edututor-AI/internal/adapters/repository"
	"github.com/vinay2231/Edututor-AI/internal/app"
	"github.com/vinay2231/Edututor-AI/internal/domain/mastery"
	"github.com/vinay2231/Edututor-AI/internal/domain/model"
)

// batchFile is the on-disk shape of a batch of jobs.
type batchFile struct {
	Jobs []queue.Job `yaml:"jobs"`
}

type studentSummary struct {
	StudentID string                  `json:"student_id"`
	Results   int                     `json:"results"`
	Vector    model.PerformanceVector `json:"vector"`
}

type batchReport struct {
	Stats    worker.Stats          `json:"stats"`
	Students []studentSummary      `json:"students"`
	Overview mastery.ClassOverview `json:"overview"`
}

func newBatchCmd(env *runtimeEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <jobs-file>",
		Short: "Grade a batch of submissions concurrently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store := repository.NewShardedStore(repository.WithShardCount(env.cfg.ShardCount))
			engine := env.engine()

			stats, err := env.runBatchFile(ctx, args[0], engine, store)
			if err != nil {
				return err
			}

			report := batchReport{Stats: stats, Students: []studentSummary{}}
			for _, id := range store.Students(ctx) {
				s := studentSummary{StudentID: id, Vector: model.PerformanceVector{}}
				if results, err := store.Results(ctx, id); err == nil {
					s.Results = len(results)
				}
				if v, err := store.Vector(ctx, id); err == nil {
					s.Vector = v
				}
				report.Students = append(report.Students, s)
			}
			if report.Overview, err = engine.ClassOverview(ctx, store.Vectors(ctx)); err != nil {
				return err
			}
			return writeOutput(cmd, report)
		},
	}
	addOutputFlag(cmd)
	return cmd
}

// runBatchFile grades every job in path into store.
func (e *runtimeEnv) runBatchFile(ctx context.Context, path string, engine *app.Engine, store repository.Store) (worker.Stats, error) {
	jobs, err := readJobs(path)
	if err != nil {
		return worker.Stats{}, err
	}
	handler, err := app.NewBatchHandler(engine, e.rubrics, store)
	if err != nil {
		return worker.Stats{}, err
	}
	return app.RunBatch(ctx, handler, jobs, app.BatchConfig{
		Workers:   e.cfg.WorkerCount,
		QueueSize: e.cfg.QueueSize,
		Logger:    e.log.Named("batch"),
	})
}

func readJobs(path string) ([]queue.Job, error) {
	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, fmt.Errorf("read jobs: %w", err)
	}
	var f batchFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse jobs %s: %w", path, err)
	}
	return f.Jobs, nil
}
