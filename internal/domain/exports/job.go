package exports

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	// ErrJobNotFound is returned when no job matches the requested ID
	ErrJobNotFound = errors.New("export job not found")
	// ErrJobFinished is returned when a transition is requested on a terminal job
	ErrJobFinished = errors.New("export job already finished")
	// ErrJobNotReady is returned when downloading a job without a stored archive
	ErrJobNotReady = errors.New("export job has no archive")
	// ErrForbidden is returned when a user accesses another user's job
	ErrForbidden = errors.New("export job belongs to another user")
)

// ExportJob tracks one request to export a user's data
type ExportJob struct {
	ID       string `validate:"required,uuid4"`
	UserID   uint   `validate:"required"`
	Status   Status `validate:"required,oneof=pending active complete stopped failed"`
	Complete bool
	// ExportData is the name of the archive in the export blob store
	ExportData  string `validate:"omitempty,max=255"`
	ExportSize  int64  `validate:"min=0"`
	Checksum    string `validate:"omitempty,hexadecimal,len=64"`
	FailReason  string
	TaskID      string
	CreatedDate time.Time `validate:"required"`
	UpdatedDate time.Time `validate:"required"`
}

// NewExportJob returns a pending job for the user
func NewExportJob(userID uint) *ExportJob {
	now := time.Now().UTC()
	return &ExportJob{
		ID:          uuid.NewString(),
		UserID:      userID,
		Status:      StatusPending,
		CreatedDate: now,
		UpdatedDate: now,
	}
}

// Validate for validating ExportJob struct
func (j *ExportJob) Validate() error {
	validate := validator.New()

	err := validate.Struct(j)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	if j.Status.IsTerminal() != j.Complete {
		return fmt.Errorf("validation failed: complete flag %t does not match status %s", j.Complete, j.Status)
	}
	return nil
}

// Start moves a pending job to active
func (j *ExportJob) Start() error {
	if j.Complete {
		return ErrJobFinished
	}
	j.setStatus(StatusActive)
	return nil
}

// Finish records the stored archive and completes the job
func (j *ExportJob) Finish(exportData string, size int64, checksum string) error {
	if j.Complete {
		return ErrJobFinished
	}
	j.ExportData = exportData
	j.ExportSize = size
	j.Checksum = checksum
	j.setStatus(StatusComplete)
	return nil
}

// Stop ends a job on user request
func (j *ExportJob) Stop() error {
	if j.Complete {
		return ErrJobFinished
	}
	j.setStatus(StatusStopped)
	return nil
}

// Fail ends the job with the given reason. A completed job stays complete.
func (j *ExportJob) Fail(reason string) error {
	if j.Complete {
		return ErrJobFinished
	}
	j.FailReason = reason
	j.setStatus(StatusFailed)
	return nil
}

// ClearExportData forgets the stored archive after it was pruned
func (j *ExportJob) ClearExportData() {
	j.ExportData = ""
	j.ExportSize = 0
	j.Checksum = ""
	j.UpdatedDate = time.Now().UTC()
}

// IsDownloadable reports whether a finished archive is available
func (j *ExportJob) IsDownloadable() bool {
	return j.Status == StatusComplete && j.ExportData != ""
}

func (j *ExportJob) setStatus(status Status) {
	j.Status = status
	j.Complete = status.IsTerminal()
	j.UpdatedDate = time.Now().UTC()
}
