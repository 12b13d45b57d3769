//go:build integration
// +build integration

package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MGTheTrain/shelf-export/internal/domain/exports"
	"github.com/MGTheTrain/shelf-export/internal/infrastructure/connector"
	"github.com/MGTheTrain/shelf-export/internal/infrastructure/metrics"
	"github.com/MGTheTrain/shelf-export/internal/infrastructure/persistence"
	"github.com/MGTheTrain/shelf-export/internal/infrastructure/queue"
	"github.com/MGTheTrain/shelf-export/internal/pkg/config"
	"github.com/MGTheTrain/shelf-export/internal/pkg/testutil"
)

// TestExportSettings are the export settings used by integration tests
var TestExportSettings = config.ExportSettings{
	Domain:        "books.example.com",
	MediaURL:      "/images/",
	ArchivePrefix: "exports/",
}

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	ExportJobService      exports.ExportJobService
	ExportDownloadService exports.ExportDownloadService
	TaskProcessor         exports.TaskProcessor
	Collector             exports.DataCollector
	Archiver              exports.Archiver
	Queue                 *queue.MemoryTaskQueue

	// Infrastructure
	DBContext   *persistence.TestContext
	Fixture     *persistence.LibraryFixture
	MediaDir    string
	ExportDir   string
	ExportStore *connector.LocalBlobConnector
}

// SetupTestServices initializes all application services for integration tests
// against a seeded database and local blob stores in temporary directories
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	ctx := context.Background()
	logger := testutil.SetupTestLogger(t)

	dbContext := persistence.SetupTestDB(t, dbType)
	fixture := persistence.SeedLibrary(t, dbContext.DB)

	mediaDir := t.TempDir()
	testutil.WriteTestFile(t, mediaDir, fixture.User.Avatar, []byte("avatar-bytes"))
	testutil.WriteTestFile(t, mediaDir, fixture.Hobbit.Book.Cover, []byte("hobbit-cover"))
	testutil.WriteTestFile(t, mediaDir, fixture.Moby.Book.Cover, []byte("moby-cover"))

	mediaStore, err := connector.NewBlobConnector(ctx, &config.StorageSettings{
		Provider: config.LocalStorageProvider,
		RootDir:  mediaDir,
	}, logger)
	require.NoError(t, err, "Failed to create media store")

	exportDir := t.TempDir()
	exportStore, err := connector.NewLocalBlobConnector(&config.StorageSettings{
		Provider: config.LocalStorageProvider,
		RootDir:  exportDir,
	}, logger)
	require.NoError(t, err, "Failed to create export store")

	taskQueue := queue.NewMemoryTaskQueue(16, 2, logger)
	t.Cleanup(func() { _ = taskQueue.Close() })

	settings := TestExportSettings
	collector, err := NewExportDataCollector(dbContext.LibraryRepo, &settings, logger)
	require.NoError(t, err)

	archiver, err := NewTarArchiver(mediaStore, logger)
	require.NoError(t, err)

	jobService, err := NewExportJobService(dbContext.ExportJobRepo, dbContext.LibraryRepo, taskQueue, exportStore, logger)
	require.NoError(t, err)

	downloadService, err := NewExportDownloadService(dbContext.ExportJobRepo, exportStore, logger)
	require.NoError(t, err)

	processor, err := NewExportTaskProcessor(
		dbContext.ExportJobRepo,
		collector,
		archiver,
		exportStore,
		metrics.NoopJobObserver{},
		settings.ArchivePrefix,
		logger,
	)
	require.NoError(t, err)

	return &TestServices{
		ExportJobService:      jobService,
		ExportDownloadService: downloadService,
		TaskProcessor:         processor,
		Collector:             collector,
		Archiver:              archiver,
		Queue:                 taskQueue,
		DBContext:             dbContext,
		Fixture:               fixture,
		MediaDir:              mediaDir,
		ExportDir:             exportDir,
		ExportStore:           exportStore,
	}
}

// TaskFor returns the task StartJob enqueued for job
func TaskFor(job *exports.ExportJob) *exports.ExportTask {
	return &exports.ExportTask{ID: job.TaskID, JobID: job.ID}
}

// ProcessorWith builds a task processor over the test stores with the given
// job repository and archiver in place of the defaults
func (s *TestServices) ProcessorWith(t *testing.T, jobRepo exports.ExportJobRepository, archiver exports.Archiver) exports.TaskProcessor {
	t.Helper()
	processor, err := NewExportTaskProcessor(
		jobRepo,
		s.Collector,
		archiver,
		s.ExportStore,
		metrics.NoopJobObserver{},
		TestExportSettings.ArchivePrefix,
		testutil.SetupTestLogger(t),
	)
	require.NoError(t, err)
	return processor
}
