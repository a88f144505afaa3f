package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunnerRunsJobImmediately(t *testing.T) {
	var runs atomic.Int32

	runner := NewRunner()
	runner.Add(Job{
		Name:     "counter",
		Interval: time.Hour,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	runner.Start(ctx)

	assert.Equal(t, int32(1), runs.Load(), "long-interval job still gets its first run")
}

func TestRunnerTicksAndStops(t *testing.T) {
	var runs atomic.Int32

	runner := NewRunner()
	runner.Add(Job{
		Name:     "ticker",
		Interval: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		runner.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("runner did not stop after context cancellation")
	}

	assert.GreaterOrEqual(t, runs.Load(), int32(2))
}

func TestRunnerSurvivesJobErrors(t *testing.T) {
	var runs atomic.Int32

	runner := NewRunner()
	runner.Add(Job{
		Name:     "failing",
		Interval: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return errors.New("boom")
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	runner.Start(ctx)

	assert.GreaterOrEqual(t, runs.Load(), int32(2), "errors must not stop the loop")
}

func TestRunnerRunsJobsIndependently(t *testing.T) {
	var fast, slow atomic.Int32

	runner := NewRunner()
	runner.Add(Job{
		Name:     "fast",
		Interval: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			fast.Add(1)
			return nil
		},
	})
	runner.Add(Job{
		Name:     "slow",
		Interval: time.Hour,
		Run: func(ctx context.Context) error {
			slow.Add(1)
			return nil
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	runner.Start(ctx)

	assert.Equal(t, int32(1), slow.Load())
	assert.Greater(t, fast.Load(), slow.Load())
}
