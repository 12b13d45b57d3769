// Package bootstrap wires configuration into the repositories, stores, queue
// and services shared by the REST API, the worker and the CLI.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/MGTheTrain/shelf-export/internal/app"
	"github.com/MGTheTrain/shelf-export/internal/domain/blobs"
	"github.com/MGTheTrain/shelf-export/internal/domain/exports"
	"github.com/MGTheTrain/shelf-export/internal/domain/library"
	"github.com/MGTheTrain/shelf-export/internal/infrastructure/connector"
	"github.com/MGTheTrain/shelf-export/internal/infrastructure/metrics"
	"github.com/MGTheTrain/shelf-export/internal/infrastructure/persistence"
	"github.com/MGTheTrain/shelf-export/internal/infrastructure/queue"
	"github.com/MGTheTrain/shelf-export/internal/pkg/config"
	"github.com/MGTheTrain/shelf-export/internal/pkg/logger"
)

// Dependencies holds all initialized application components
type Dependencies struct {
	DB            *gorm.DB
	LibraryRepo   library.Repository
	ExportJobRepo exports.ExportJobRepository
	MediaStore    blobs.BlobConnector
	ExportStore   blobs.BlobConnector
	Queue         exports.TaskQueue

	Collector             exports.DataCollector
	Archiver              exports.Archiver
	ExportJobService      exports.ExportJobService
	ExportDownloadService exports.ExportDownloadService
	TaskProcessor         exports.TaskProcessor
	Pruner                *app.ExportPruner
}

// Initialize connects to the database, migrates the schema and builds every
// component. Job metrics are registered on registerer when it is non-nil.
func Initialize(ctx context.Context, cfg *config.AppConfig, registerer prometheus.Registerer, log logger.Logger) (*Dependencies, error) {
	db, err := persistence.NewDBConnection(cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	deps, err := initialize(ctx, db, cfg, registerer, log)
	if err != nil {
		_ = persistence.CloseDB(db)
		return nil, err
	}
	return deps, nil
}

func initialize(ctx context.Context, db *gorm.DB, cfg *config.AppConfig, registerer prometheus.Registerer, log logger.Logger) (*Dependencies, error) {
	if err := persistence.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	deps := &Dependencies{DB: db}
	var err error

	// Initialize repositories
	if deps.LibraryRepo, err = persistence.NewGormLibraryRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create library repository: %w", err)
	}
	if deps.ExportJobRepo, err = persistence.NewGormExportJobRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create export job repository: %w", err)
	}

	// Initialize connectors
	if deps.MediaStore, err = connector.NewBlobConnector(ctx, &cfg.MediaStorage, log); err != nil {
		return nil, fmt.Errorf("failed to create media store: %w", err)
	}
	if deps.ExportStore, err = connector.NewBlobConnector(ctx, &cfg.ExportStorage, log); err != nil {
		return nil, fmt.Errorf("failed to create export store: %w", err)
	}

	if deps.Queue, err = queue.NewTaskQueue(&cfg.Queue, log); err != nil {
		return nil, fmt.Errorf("failed to create task queue: %w", err)
	}

	var observer exports.JobObserver = metrics.NoopJobObserver{}
	if registerer != nil {
		prometheusObserver, err := metrics.NewPrometheusJobObserver(registerer)
		if err != nil {
			return nil, err
		}
		observer = prometheusObserver
	}

	// Initialize services
	if deps.Collector, err = app.NewExportDataCollector(deps.LibraryRepo, &cfg.Export, log); err != nil {
		return nil, fmt.Errorf("failed to create data collector: %w", err)
	}
	if deps.Archiver, err = app.NewTarArchiver(deps.MediaStore, log); err != nil {
		return nil, fmt.Errorf("failed to create archiver: %w", err)
	}
	if deps.ExportJobService, err = app.NewExportJobService(deps.ExportJobRepo, deps.LibraryRepo, deps.Queue, deps.ExportStore, log); err != nil {
		return nil, fmt.Errorf("failed to create export job service: %w", err)
	}
	if deps.ExportDownloadService, err = app.NewExportDownloadService(deps.ExportJobRepo, deps.ExportStore, log); err != nil {
		return nil, fmt.Errorf("failed to create export download service: %w", err)
	}
	deps.TaskProcessor, err = app.NewExportTaskProcessor(
		deps.ExportJobRepo, deps.Collector, deps.Archiver, deps.ExportStore,
		observer, cfg.Export.ArchivePrefix, log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task processor: %w", err)
	}
	deps.Pruner = app.NewExportPruner(deps.ExportJobService, cfg.Export.RetentionDays, log)

	log.Info("Application services initialized successfully",
		"database", cfg.Database.Type,
		"queue", cfg.Queue.Type,
		"media_storage", cfg.MediaStorage.Provider,
		"export_storage", cfg.ExportStorage.Provider)
	return deps, nil
}

// Close releases the queue and the database connection
func (d *Dependencies) Close() error {
	var errs []error
	if d.Queue != nil {
		errs = append(errs, d.Queue.Close())
	}
	errs = append(errs, persistence.CloseDB(d.DB))
	return errors.Join(errs...)
}
