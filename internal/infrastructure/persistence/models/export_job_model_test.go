//go:build unit
// +build unit

package models

import (
	"testing"
	"time"

	"github.com/MGTheTrain/shelf-export/internal/domain/exports"
	"github.com/stretchr/testify/assert"
)

func TestExportJobModel_ToDomain(t *testing.T) {
	now := time.Now().UTC()
	model := &ExportJobModel{
		ID:          "5f0e4bcb-6b0f-4b52-8f26-0c1d0e7c3a11",
		UserID:      7,
		Status:      "complete",
		Complete:    true,
		ExportData:  "exports/5f0e4bcb-6b0f-4b52-8f26-0c1d0e7c3a11.tar.gz",
		ExportSize:  2048,
		Checksum:    "ab",
		TaskID:      "task-1",
		CreatedDate: now,
		UpdatedDate: now,
	}

	job := model.ToDomain()

	assert.Equal(t, model.ID, job.ID)
	assert.Equal(t, model.UserID, job.UserID)
	assert.Equal(t, exports.StatusComplete, job.Status)
	assert.True(t, job.Complete)
	assert.Equal(t, model.ExportData, job.ExportData)
	assert.Equal(t, model.ExportSize, job.ExportSize)
	assert.Equal(t, model.Checksum, job.Checksum)
	assert.Equal(t, model.TaskID, job.TaskID)
	assert.Equal(t, now, job.CreatedDate)
}

func TestExportJobModel_FromDomain(t *testing.T) {
	job := exports.NewExportJob(3)
	assert.NoError(t, job.Fail("boom"))

	model := &ExportJobModel{}
	model.FromDomain(job)

	assert.Equal(t, job.ID, model.ID)
	assert.Equal(t, uint(3), model.UserID)
	assert.Equal(t, "failed", model.Status)
	assert.True(t, model.Complete)
	assert.Equal(t, "boom", model.FailReason)
	assert.Equal(t, job.UpdatedDate, model.UpdatedDate)
}

func TestExportJobModel_RoundTrip(t *testing.T) {
	job := exports.NewExportJob(9)
	model := &ExportJobModel{}
	model.FromDomain(job)

	assert.Equal(t, job, model.ToDomain())
}
