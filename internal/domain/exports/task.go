package exports

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// ErrQueueClosed is returned when enqueueing on a closed queue
var ErrQueueClosed = errors.New("task queue closed")

// ExportTask is the message handed from the API to a worker
type ExportTask struct {
	ID         string    `json:"id"`
	JobID      string    `json:"job_id"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// NewExportTask returns a task with a fresh ID for the job
func NewExportTask(jobID string) *ExportTask {
	return &ExportTask{
		ID:         uuid.NewString(),
		JobID:      jobID,
		EnqueuedAt: time.Now().UTC(),
	}
}

// Encode serializes the task for transport
func (t *ExportTask) Encode() ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to encode export task: %w", err)
	}
	return data, nil
}

// DecodeExportTask parses a transported task
func DecodeExportTask(data []byte) (*ExportTask, error) {
	task := new(ExportTask)
	if err := json.Unmarshal(data, task); err != nil {
		return nil, fmt.Errorf("failed to decode export task: %w", err)
	}
	if task.JobID == "" {
		return nil, errors.New("export task without job id")
	}
	return task, nil
}

// TaskHandler processes one dequeued task
type TaskHandler func(ctx context.Context, task *ExportTask) error

// TaskQueue dispatches export tasks to workers
type TaskQueue interface {
	// Enqueue publishes a task
	Enqueue(ctx context.Context, task *ExportTask) error

	// Consume delivers tasks to handler until ctx is cancelled or the queue is closed
	Consume(ctx context.Context, handler TaskHandler) error

	// Close releases the queue's resources
	Close() error
}
