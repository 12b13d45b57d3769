package exports

import (
	"context"
	"io"
	"time"

	"github.com/MGTheTrain/shelf-export/internal/domain/library"
)

// ExportJobService defines the user-facing operations on export jobs
type ExportJobService interface {
	// StartJob creates a pending job for the user and enqueues it for a worker
	StartJob(ctx context.Context, userID uint) (*ExportJob, error)

	// List returns the user's jobs, newest first
	List(ctx context.Context, userID uint) ([]*ExportJob, error)

	// GetByID returns a job owned by the user
	GetByID(ctx context.Context, jobID string, userID uint) (*ExportJob, error)

	// Stop ends a job owned by the user that has not finished yet
	Stop(ctx context.Context, jobID string, userID uint) (*ExportJob, error)

	// PruneExpired deletes archives of jobs finished before the cutoff and returns how many were removed
	PruneExpired(ctx context.Context, cutoff time.Time) (int, error)

	// FailUnfinished marks every pending or active job failed with reason and
	// returns how many were marked. Used when queued tasks were lost.
	FailUnfinished(ctx context.Context, reason string) (int, error)
}

// ExportDownloadService streams finished archives
type ExportDownloadService interface {
	// DownloadByID opens the archive of a completed job owned by the user.
	// The caller must close the returned reader.
	DownloadByID(ctx context.Context, jobID string, userID uint) (io.ReadCloser, *ExportJob, error)
}

// TaskProcessor runs export tasks on the worker side
type TaskProcessor interface {
	// ProcessTask assembles and stores the archive of the task's job
	ProcessTask(ctx context.Context, task *ExportTask) error
}

// DataCollector gathers a user's data into a bundle
type DataCollector interface {
	// Collect returns the user's bundle and the editions whose covers belong in the archive
	Collect(ctx context.Context, userID uint) (*Bundle, *library.User, []*library.Edition, error)
}

// Archiver writes a bundle and its images as a compressed archive
type Archiver interface {
	Archive(ctx context.Context, w io.Writer, bundle *Bundle, user *library.User, editions []*library.Edition) error
}

// ExportJobRepository persists export jobs
type ExportJobRepository interface {
	Create(ctx context.Context, job *ExportJob) error
	GetByID(ctx context.Context, jobID string) (*ExportJob, error)
	ListByUser(ctx context.Context, userID uint) ([]*ExportJob, error)
	// ListExpired returns finished jobs updated before the cutoff that still reference an archive
	ListExpired(ctx context.Context, cutoff time.Time) ([]*ExportJob, error)
	// ListUnfinished returns pending and active jobs, oldest first
	ListUnfinished(ctx context.Context) ([]*ExportJob, error)
	// Update stores the job's state. It returns ErrJobFinished when the stored
	// job already ended with another status, a terminal status is never replaced.
	Update(ctx context.Context, job *ExportJob) error
}

// JobObserver receives job lifecycle events, e.g. for metrics
type JobObserver interface {
	JobStarted()
	JobFinished(status Status, duration time.Duration)
}
