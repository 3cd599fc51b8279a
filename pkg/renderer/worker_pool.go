package renderer

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RowTask represents a scan line rendering task for the worker pool
type RowTask struct {
	Row  int   // Scan line index, 0 is the bottom row
	Seed int64 // Seed for this row's private random stream
}

// WorkerPool runs row tasks on a bounded number of goroutines.
// The first failing task cancels the pool's context.
type WorkerPool struct {
	group      *errgroup.Group
	ctx        context.Context
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(ctx context.Context, numWorkers int) *WorkerPool {
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(numWorkers)
	return &WorkerPool{
		group:      group,
		ctx:        groupCtx,
		numWorkers: numWorkers,
	}
}

// Submit queues a task, blocking while all workers are busy. Tasks submitted
// after cancellation are skipped.
func (wp *WorkerPool) Submit(task RowTask, run func(ctx context.Context, task RowTask) error) {
	wp.group.Go(func() error {
		if err := wp.ctx.Err(); err != nil {
			return err
		}
		return run(wp.ctx, task)
	})
}

// Wait blocks until every submitted task has finished and returns the first error
func (wp *WorkerPool) Wait() error {
	return wp.group.Wait()
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}
