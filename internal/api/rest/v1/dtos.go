package v1

import (
	"time"

	"github.com/MGTheTrain/shelf-export/internal/domain/exports"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string `json:"message"`
}

// ExportJobResponse describes an export job to its owner
type ExportJobResponse struct {
	ID           string    `json:"id"`
	Status       string    `json:"status"`
	Complete     bool      `json:"complete"`
	Size         int64     `json:"size,omitempty"`
	Checksum     string    `json:"checksum,omitempty"`
	FailReason   string    `json:"fail_reason,omitempty"`
	Downloadable bool      `json:"downloadable"`
	CreatedDate  time.Time `json:"created_date"`
	UpdatedDate  time.Time `json:"updated_date"`
}

// NewExportJobResponse maps a job to its response DTO
func NewExportJobResponse(job *exports.ExportJob) ExportJobResponse {
	return ExportJobResponse{
		ID:           job.ID,
		Status:       job.Status.String(),
		Complete:     job.Complete,
		Size:         job.ExportSize,
		Checksum:     job.Checksum,
		FailReason:   job.FailReason,
		Downloadable: job.IsDownloadable(),
		CreatedDate:  job.CreatedDate,
		UpdatedDate:  job.UpdatedDate,
	}
}
