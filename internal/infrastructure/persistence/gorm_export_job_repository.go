package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MGTheTrain/shelf-export/internal/domain/exports"
	"github.com/MGTheTrain/shelf-export/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/shelf-export/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormExportJobRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormExportJobRepository creates a new GORM-based ExportJobRepository implementation
func NewGormExportJobRepository(db *gorm.DB, logger logger.Logger) (exports.ExportJobRepository, error) {
	return &gormExportJobRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormExportJobRepository) Create(ctx context.Context, job *exports.ExportJob) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ExportJobModel{}
	model.FromDomain(job)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create export job: %w", err)
	}

	r.logger.Info("Created export job", "job_id", job.ID, "user_id", job.UserID)
	return nil
}

func (r *gormExportJobRepository) GetByID(ctx context.Context, jobID string) (*exports.ExportJob, error) {
	var model models.ExportJobModel
	if err := r.db.WithContext(ctx).Where("id = ?", jobID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", exports.ErrJobNotFound, jobID)
		}
		return nil, fmt.Errorf("failed to fetch export job: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormExportJobRepository) ListByUser(ctx context.Context, userID uint) ([]*exports.ExportJob, error) {
	var modelList []*models.ExportJobModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_date desc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch export jobs: %w", err)
	}

	domainList := make([]*exports.ExportJob, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormExportJobRepository) ListExpired(ctx context.Context, cutoff time.Time) ([]*exports.ExportJob, error) {
	var modelList []*models.ExportJobModel
	err := r.db.WithContext(ctx).
		Where("complete = ? AND export_data <> ? AND updated_date < ?", true, "", cutoff).
		Order("updated_date").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch expired export jobs: %w", err)
	}

	domainList := make([]*exports.ExportJob, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormExportJobRepository) ListUnfinished(ctx context.Context) ([]*exports.ExportJob, error) {
	var modelList []*models.ExportJobModel
	err := r.db.WithContext(ctx).
		Where("complete = ?", false).
		Order("created_date").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unfinished export jobs: %w", err)
	}

	domainList := make([]*exports.ExportJob, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

// Update writes the job's state unless the stored row already reached a
// different terminal status. Stale copies therefore cannot overwrite a stop,
// a failure or a completion; ErrJobFinished is returned instead.
func (r *gormExportJobRepository) Update(ctx context.Context, job *exports.ExportJob) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	result := r.db.WithContext(ctx).
		Model(&models.ExportJobModel{}).
		Where("id = ? AND (complete = ? OR status = ?)", job.ID, false, job.Status.String()).
		Updates(map[string]any{
			"status":       job.Status.String(),
			"complete":     job.Complete,
			"export_data":  job.ExportData,
			"export_size":  job.ExportSize,
			"checksum":     job.Checksum,
			"fail_reason":  job.FailReason,
			"task_id":      job.TaskID,
			"updated_date": job.UpdatedDate,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update export job: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.ExportJobModel{}).Where("id = ?", job.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to fetch export job: %w", err)
		}
		if count == 0 {
			return fmt.Errorf("%w: %s", exports.ErrJobNotFound, job.ID)
		}
		return fmt.Errorf("%w: %s", exports.ErrJobFinished, job.ID)
	}

	r.logger.Info("Updated export job", "job_id", job.ID, "status", job.Status.String())
	return nil
}
