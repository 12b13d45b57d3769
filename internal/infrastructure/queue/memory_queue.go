package queue

import (
	"context"
	"sync"

	"github.com/MGTheTrain/shelf-export/internal/domain/exports"
	"github.com/MGTheTrain/shelf-export/internal/pkg/logger"
)

// MemoryTaskQueue is a buffered channel drained by a fixed number of worker goroutines
type MemoryTaskQueue struct {
	tasks   chan *exports.ExportTask
	workers int
	logger  logger.Logger

	mu        sync.RWMutex
	done      chan struct{}
	closeOnce sync.Once
}

// NewMemoryTaskQueue returns a queue holding up to bufferSize pending tasks.
// Consume runs workers handlers concurrently, at least one.
func NewMemoryTaskQueue(bufferSize, workers int, logger logger.Logger) *MemoryTaskQueue {
	if workers < 1 {
		workers = 1
	}
	return &MemoryTaskQueue{
		tasks:   make(chan *exports.ExportTask, bufferSize),
		workers: workers,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// Enqueue blocks until the task is buffered, ctx is done or the queue is closed
func (q *MemoryTaskQueue) Enqueue(ctx context.Context, task *exports.ExportTask) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	select {
	case <-q.done:
		return exports.ErrQueueClosed
	default:
	}

	select {
	case q.tasks <- task:
		q.logger.Debug("Enqueued export task", "job_id", task.JobID)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-q.done:
		return exports.ErrQueueClosed
	}
}

// Consume runs the workers until ctx is done or the queue is closed and drained.
// Tasks still buffered when ctx is done are dropped, their jobs stay unfinished
// until ExportJobService.FailUnfinished runs.
func (q *MemoryTaskQueue) Consume(ctx context.Context, handler exports.TaskHandler) error {
	var wg sync.WaitGroup
	for i := 0; i < q.workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			q.work(ctx, worker, handler)
		}(i)
	}
	wg.Wait()

	if dropped := len(q.tasks); dropped > 0 && ctx.Err() != nil {
		q.logger.Warn("Dropped buffered export tasks", "count", dropped)
	}
	return nil
}

func (q *MemoryTaskQueue) work(ctx context.Context, worker int, handler exports.TaskHandler) {
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-q.tasks:
			if !ok {
				return
			}
			if err := handler(ctx, task); err != nil {
				q.logger.Error("Export task failed", "job_id", task.JobID, "worker", worker, "error", err)
			}
		}
	}
}

// Close stops accepting tasks. Consumers finish the buffered tasks and return.
func (q *MemoryTaskQueue) Close() error {
	q.closeOnce.Do(func() {
		close(q.done)
		q.mu.Lock()
		close(q.tasks)
		q.mu.Unlock()
	})
	return nil
}

var _ exports.TaskQueue = (*MemoryTaskQueue)(nil)
