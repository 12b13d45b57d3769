package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/MGTheTrain/shelf-export/internal/domain/blobs"
	"github.com/MGTheTrain/shelf-export/internal/domain/exports"
	"github.com/MGTheTrain/shelf-export/internal/domain/library"
	"github.com/MGTheTrain/shelf-export/internal/pkg/logger"
)

// exportJobService implements the ExportJobService interface
type exportJobService struct {
	jobRepo     exports.ExportJobRepository
	libraryRepo library.Repository
	queue       exports.TaskQueue
	exportStore blobs.BlobConnector
	logger      logger.Logger
}

// NewExportJobService creates a new instance of ExportJobService
func NewExportJobService(
	jobRepo exports.ExportJobRepository,
	libraryRepo library.Repository,
	queue exports.TaskQueue,
	exportStore blobs.BlobConnector,
	logger logger.Logger,
) (exports.ExportJobService, error) {
	return &exportJobService{
		jobRepo:     jobRepo,
		libraryRepo: libraryRepo,
		queue:       queue,
		exportStore: exportStore,
		logger:      logger,
	}, nil
}

// StartJob creates a pending job and hands it to the task queue. A job that
// cannot be enqueued is marked failed.
func (s *exportJobService) StartJob(ctx context.Context, userID uint) (*exports.ExportJob, error) {
	if _, err := s.libraryRepo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	job := exports.NewExportJob(userID)
	task := exports.NewExportTask(job.ID)
	job.TaskID = task.ID

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create export job: %w", err)
	}

	if err := s.queue.Enqueue(ctx, task); err != nil {
		s.logger.Error("Failed to enqueue export job", "job_id", job.ID, "error", err)
		if failErr := job.Fail(fmt.Sprintf("enqueue: %v", err)); failErr == nil {
			if updateErr := s.jobRepo.Update(context.WithoutCancel(ctx), job); updateErr != nil {
				s.logger.Error("Failed to mark export job failed", "job_id", job.ID, "error", updateErr)
			}
		}
		return nil, fmt.Errorf("failed to enqueue export job: %w", err)
	}

	s.logger.Info("Started export job", "job_id", job.ID, "user_id", userID, "task_id", task.ID)
	return job, nil
}

// List returns the user's jobs, newest first
func (s *exportJobService) List(ctx context.Context, userID uint) ([]*exports.ExportJob, error) {
	return s.jobRepo.ListByUser(ctx, userID)
}

// GetByID returns a job owned by the user
func (s *exportJobService) GetByID(ctx context.Context, jobID string, userID uint) (*exports.ExportJob, error) {
	return getOwnedJob(ctx, s.jobRepo, jobID, userID)
}

// Stop ends a job that has not finished yet. A worker that already picked
// the job up discards its archive when it sees the stopped status.
func (s *exportJobService) Stop(ctx context.Context, jobID string, userID uint) (*exports.ExportJob, error) {
	job, err := getOwnedJob(ctx, s.jobRepo, jobID, userID)
	if err != nil {
		return nil, err
	}
	if err := job.Stop(); err != nil {
		return nil, err
	}
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info("Stopped export job", "job_id", job.ID)
	return job, nil
}

// PruneExpired deletes the archives of jobs finished before cutoff. Jobs
// whose archive cannot be deleted are kept for the next run.
func (s *exportJobService) PruneExpired(ctx context.Context, cutoff time.Time) (int, error) {
	jobs, err := s.jobRepo.ListExpired(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	pruned := 0
	for _, job := range jobs {
		if err := s.exportStore.Delete(ctx, job.ExportData); err != nil {
			s.logger.Warn("Failed to delete expired archive", "job_id", job.ID, "archive", job.ExportData, "error", err)
			continue
		}
		job.ClearExportData()
		if err := s.jobRepo.Update(ctx, job); err != nil {
			return pruned, err
		}
		pruned++
	}

	s.logger.Info("Pruned expired exports", "cutoff", cutoff, "count", pruned)
	return pruned, nil
}

// FailUnfinished ends jobs whose tasks can no longer be delivered, e.g. tasks
// buffered in memory by a process that exited. Jobs that end concurrently
// keep their status.
func (s *exportJobService) FailUnfinished(ctx context.Context, reason string) (int, error) {
	jobs, err := s.jobRepo.ListUnfinished(ctx)
	if err != nil {
		return 0, err
	}

	failed := 0
	for _, job := range jobs {
		if err := job.Fail(reason); err != nil {
			continue
		}
		if err := s.jobRepo.Update(ctx, job); err != nil {
			if errors.Is(err, exports.ErrJobFinished) {
				continue
			}
			return failed, err
		}
		failed++
	}

	if failed > 0 {
		s.logger.Warn("Failed unfinished export jobs", "count", failed, "reason", reason)
	}
	return failed, nil
}

// exportDownloadService implements the ExportDownloadService interface
type exportDownloadService struct {
	jobRepo     exports.ExportJobRepository
	exportStore blobs.BlobConnector
	logger      logger.Logger
}

// NewExportDownloadService creates a new instance of ExportDownloadService
func NewExportDownloadService(jobRepo exports.ExportJobRepository, exportStore blobs.BlobConnector, logger logger.Logger) (exports.ExportDownloadService, error) {
	return &exportDownloadService{
		jobRepo:     jobRepo,
		exportStore: exportStore,
		logger:      logger,
	}, nil
}

// DownloadByID opens the archive of a completed job owned by the user
func (s *exportDownloadService) DownloadByID(ctx context.Context, jobID string, userID uint) (io.ReadCloser, *exports.ExportJob, error) {
	job, err := getOwnedJob(ctx, s.jobRepo, jobID, userID)
	if err != nil {
		return nil, nil, err
	}
	if !job.IsDownloadable() {
		return nil, nil, fmt.Errorf("%w: status %s", exports.ErrJobNotReady, job.Status)
	}

	rc, err := s.exportStore.Download(ctx, job.ExportData)
	if err != nil {
		if errors.Is(err, blobs.ErrBlobNotFound) {
			return nil, nil, fmt.Errorf("%w: %v", exports.ErrJobNotReady, err)
		}
		return nil, nil, err
	}

	s.logger.Info("Downloading export", "job_id", job.ID, "archive", job.ExportData)
	return rc, job, nil
}

// exportTaskProcessor implements the TaskProcessor interface
type exportTaskProcessor struct {
	jobRepo       exports.ExportJobRepository
	collector     exports.DataCollector
	archiver      exports.Archiver
	exportStore   blobs.BlobConnector
	observer      exports.JobObserver
	archivePrefix string
	logger        logger.Logger
}

// NewExportTaskProcessor creates a new instance of TaskProcessor. Archives
// are stored as <archivePrefix><uuid>.tar.gz.
func NewExportTaskProcessor(
	jobRepo exports.ExportJobRepository,
	collector exports.DataCollector,
	archiver exports.Archiver,
	exportStore blobs.BlobConnector,
	observer exports.JobObserver,
	archivePrefix string,
	logger logger.Logger,
) (exports.TaskProcessor, error) {
	return &exportTaskProcessor{
		jobRepo:       jobRepo,
		collector:     collector,
		archiver:      archiver,
		exportStore:   exportStore,
		observer:      observer,
		archivePrefix: archivePrefix,
		logger:        logger,
	}, nil
}

// ProcessTask builds and stores the archive of the task's job. Jobs that are
// already complete, including stopped ones, are skipped. A job that ends
// while its archive is built keeps its status and the archive is discarded.
func (p *exportTaskProcessor) ProcessTask(ctx context.Context, task *exports.ExportTask) error {
	log := p.logger.With("job_id", task.JobID, "task_id", task.ID)

	job, err := p.jobRepo.GetByID(ctx, task.JobID)
	if err != nil {
		return err
	}
	if job.Complete {
		log.Info("Skipping finished export job", "status", job.Status.String())
		return nil
	}

	if err := job.Start(); err != nil {
		return err
	}
	if err := p.jobRepo.Update(ctx, job); err != nil {
		if errors.Is(err, exports.ErrJobFinished) {
			log.Info("Skipping export job finished before it started")
			return nil
		}
		return err
	}
	p.observer.JobStarted()
	started := time.Now()

	name, size, checksum, err := p.export(ctx, job)
	if err != nil {
		log.Error("Export job failed", "error", err)
		return p.fail(ctx, job, started, err)
	}

	finished := *job
	if err := finished.Finish(name, size, checksum); err != nil {
		p.discard(ctx, name)
		return err
	}
	if err := p.jobRepo.Update(ctx, &finished); err != nil {
		p.discard(ctx, name)
		if errors.Is(err, exports.ErrJobFinished) {
			log.Info("Discarded archive of export job finished while running")
			p.observeStored(ctx, job.ID, started)
			return nil
		}
		return p.fail(ctx, job, started, err)
	}
	*job = finished

	p.observer.JobFinished(exports.StatusComplete, time.Since(started))
	log.Info("Export job complete", "archive", name, "size", size)
	return nil
}

// export streams the archive into the export store and returns its name, size and SHA-256 checksum
func (p *exportTaskProcessor) export(ctx context.Context, job *exports.ExportJob) (string, int64, string, error) {
	bundle, user, editions, err := p.collector.Collect(ctx, job.UserID)
	if err != nil {
		return "", 0, "", err
	}

	name := p.archivePrefix + uuid.NewString() + ".tar.gz"
	hasher := sha256.New()
	counter := &countingWriter{}

	pr, pw := io.Pipe()
	archived := make(chan error, 1)
	go func() {
		err := p.archiver.Archive(ctx, io.MultiWriter(pw, hasher, counter), bundle, user, editions)
		_ = pw.CloseWithError(err)
		archived <- err
	}()

	uploadErr := p.exportStore.Upload(ctx, name, pr)
	_ = pr.CloseWithError(uploadErr)
	archiveErr := <-archived

	if err := errors.Join(archiveErr, uploadErr); err != nil {
		p.discard(ctx, name)
		return "", 0, "", err
	}
	return name, counter.n, hex.EncodeToString(hasher.Sum(nil)), nil
}

// fail records cause on the job. A job that ended in the meantime keeps its
// status and the failure is only logged.
func (p *exportTaskProcessor) fail(ctx context.Context, job *exports.ExportJob, started time.Time, cause error) error {
	ctx = context.WithoutCancel(ctx)
	if err := job.Fail(cause.Error()); err != nil {
		return cause
	}
	if err := p.jobRepo.Update(ctx, job); err != nil {
		if errors.Is(err, exports.ErrJobFinished) {
			p.logger.Info("Export job finished while running, failure not recorded", "job_id", job.ID, "error", cause)
			p.observeStored(ctx, job.ID, started)
			return nil
		}
		p.logger.Error("Failed to mark export job failed", "job_id", job.ID, "error", err)
	}
	p.observer.JobFinished(exports.StatusFailed, time.Since(started))
	return cause
}

// observeStored reports the status another writer ended the job with
func (p *exportTaskProcessor) observeStored(ctx context.Context, jobID string, started time.Time) {
	status := exports.StatusStopped
	if current, err := p.jobRepo.GetByID(context.WithoutCancel(ctx), jobID); err == nil {
		status = current.Status
	}
	p.observer.JobFinished(status, time.Since(started))
}

// discard removes a partially or needlessly uploaded archive
func (p *exportTaskProcessor) discard(ctx context.Context, name string) {
	if err := p.exportStore.Delete(context.WithoutCancel(ctx), name); err != nil {
		p.logger.Warn("Failed to delete archive", "archive", name, "error", err)
	}
}

// countingWriter counts the bytes written through it
type countingWriter struct {
	n int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}

func getOwnedJob(ctx context.Context, repo exports.ExportJobRepository, jobID string, userID uint) (*exports.ExportJob, error) {
	job, err := repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.UserID != userID {
		return nil, exports.ErrForbidden
	}
	return job, nil
}
