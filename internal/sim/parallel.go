package sim

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/mechlab/internal/experiment"
)

// Job is one independent run. Each job owns its experiment and metrics;
// nothing is shared between jobs.
type Job struct {
	Label      string
	Experiment experiment.Experiment
	Metrics    []Metric
}

// RunAll runs every job with cfg, at most workers at a time (workers <= 0
// means unlimited). Results keep job order. The first failure cancels the
// remaining runs.
func RunAll(ctx context.Context, jobs []Job, cfg Config, workers int, logger *zap.Logger) ([]*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	results := make([]*Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, job := range jobs {
		g.Go(func() error {
			s := New(job.Experiment, WithLogger(logger.With(zap.String("job", job.Label))))
			for _, m := range job.Metrics {
				s.AddMetric(m)
			}
			res, err := s.Run(ctx, cfg)
			if err != nil {
				return fmt.Errorf("job %q: %w", job.Label, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
