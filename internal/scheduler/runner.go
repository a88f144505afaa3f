package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a named periodic unit of work. Each invocation processes a bounded
// amount of work and returns; errors are logged, never fatal.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Runner drives registered jobs on independent tickers. Each job runs
// sequentially in its own loop, so invocations of the same job never overlap.
type Runner struct {
	jobs []Job
}

func NewRunner() *Runner {
	return &Runner{}
}

func (r *Runner) Add(job Job) {
	r.jobs = append(r.jobs, job)
}

// Start launches every job with an immediate first run and blocks until the
// context is cancelled and all job loops have returned.
func (r *Runner) Start(ctx context.Context) {
	var wg sync.WaitGroup

	for _, job := range r.jobs {
		wg.Add(1)
		go func(job Job) {
			defer wg.Done()
			r.runLoop(ctx, job)
		}(job)
	}

	wg.Wait()
}

func (r *Runner) runLoop(ctx context.Context, job Job) {
	slog.Info("job scheduled", "job", job.Name, "interval", job.Interval)

	invoke := func() {
		start := time.Now()
		if err := job.Run(ctx); err != nil && ctx.Err() == nil {
			slog.Error("job run failed", "job", job.Name, "error", err)
			return
		}
		slog.Debug("job run completed", "job", job.Name, "duration", time.Since(start))
	}

	invoke()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("job stopped", "job", job.Name)
			return
		case <-ticker.C:
			invoke()
		}
	}
}
