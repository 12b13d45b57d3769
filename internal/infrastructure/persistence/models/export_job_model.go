package models

import (
	"time"

	"github.com/MGTheTrain/shelf-export/internal/domain/exports"
)

// ExportJobModel is the GORM database model for export jobs (infrastructure concern)
type ExportJobModel struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"`
	UserID      uint      `gorm:"not null;index"`
	Status      string    `gorm:"not null;type:varchar(50);index"`
	Complete    bool      `gorm:"not null"`
	ExportData  string    `gorm:"type:varchar(255)"`
	ExportSize  int64     `gorm:"not null"`
	Checksum    string    `gorm:"type:varchar(64)"`
	FailReason  string    `gorm:"type:text"`
	TaskID      string    `gorm:"type:varchar(255)"`
	CreatedDate time.Time `gorm:"not null;index"`
	UpdatedDate time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ExportJobModel) TableName() string {
	return "export_jobs"
}

// ToDomain converts GORM model to domain entity
func (m *ExportJobModel) ToDomain() *exports.ExportJob {
	return &exports.ExportJob{
		ID:          m.ID,
		UserID:      m.UserID,
		Status:      exports.Status(m.Status),
		Complete:    m.Complete,
		ExportData:  m.ExportData,
		ExportSize:  m.ExportSize,
		Checksum:    m.Checksum,
		FailReason:  m.FailReason,
		TaskID:      m.TaskID,
		CreatedDate: m.CreatedDate,
		UpdatedDate: m.UpdatedDate,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ExportJobModel) FromDomain(j *exports.ExportJob) {
	m.ID = j.ID
	m.UserID = j.UserID
	m.Status = j.Status.String()
	m.Complete = j.Complete
	m.ExportData = j.ExportData
	m.ExportSize = j.ExportSize
	m.Checksum = j.Checksum
	m.FailReason = j.FailReason
	m.TaskID = j.TaskID
	m.CreatedDate = j.CreatedDate
	m.UpdatedDate = j.UpdatedDate
}
