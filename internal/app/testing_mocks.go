//go:build unit
// +build unit

package app

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/MGTheTrain/shelf-export/internal/domain/exports"
	"github.com/MGTheTrain/shelf-export/internal/domain/library"
)

// MockLibraryRepository is a mock implementation of library.Repository
type MockLibraryRepository struct {
	mock.Mock
}

func (m *MockLibraryRepository) GetUserByID(ctx context.Context, userID uint) (*library.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*library.User), args.Error(1)
}

func (m *MockLibraryRepository) ListAnnualGoals(ctx context.Context, userID uint) ([]*library.AnnualGoal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*library.AnnualGoal), args.Error(1)
}

func (m *MockLibraryRepository) ListReadThroughs(ctx context.Context, userID uint, bookID *uint) ([]*library.ReadThrough, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*library.ReadThrough), args.Error(1)
}

func (m *MockLibraryRepository) ListEditionsForUser(ctx context.Context, userID uint) ([]*library.Edition, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*library.Edition), args.Error(1)
}

func (m *MockLibraryRepository) ListShelvesForBook(ctx context.Context, userID, bookID uint) ([]*library.Shelf, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*library.Shelf), args.Error(1)
}

func (m *MockLibraryRepository) ListShelfBooks(ctx context.Context, userID, shelfID uint) ([]*library.ShelfBook, error) {
	args := m.Called(ctx, userID, shelfID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*library.ShelfBook), args.Error(1)
}

func (m *MockLibraryRepository) ListListsForBook(ctx context.Context, userID, bookID uint) ([]*library.List, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*library.List), args.Error(1)
}

func (m *MockLibraryRepository) ListListItems(ctx context.Context, listID uint) ([]*library.ListItem, error) {
	args := m.Called(ctx, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*library.ListItem), args.Error(1)
}

func (m *MockLibraryRepository) ListStatuses(ctx context.Context, userID, bookID uint, statusType library.StatusType) ([]*library.Status, error) {
	args := m.Called(ctx, userID, bookID, statusType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*library.Status), args.Error(1)
}

func (m *MockLibraryRepository) ListSavedListRemoteIDs(ctx context.Context, userID uint) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLibraryRepository) ListFollowingRemoteIDs(ctx context.Context, userID uint) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLibraryRepository) ListBlockedRemoteIDs(ctx context.Context, userID uint) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockExportJobRepository is a mock implementation of exports.ExportJobRepository
type MockExportJobRepository struct {
	mock.Mock
}

func (m *MockExportJobRepository) Create(ctx context.Context, job *exports.ExportJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockExportJobRepository) GetByID(ctx context.Context, jobID string) (*exports.ExportJob, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exports.ExportJob), args.Error(1)
}

func (m *MockExportJobRepository) ListByUser(ctx context.Context, userID uint) ([]*exports.ExportJob, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*exports.ExportJob), args.Error(1)
}

func (m *MockExportJobRepository) ListExpired(ctx context.Context, cutoff time.Time) ([]*exports.ExportJob, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*exports.ExportJob), args.Error(1)
}

func (m *MockExportJobRepository) ListUnfinished(ctx context.Context) ([]*exports.ExportJob, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*exports.ExportJob), args.Error(1)
}

func (m *MockExportJobRepository) Update(ctx context.Context, job *exports.ExportJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

// MockBlobConnector is a mock implementation of blobs.BlobConnector.
// Upload drains the reader so that producers writing into a pipe finish.
type MockBlobConnector struct {
	mock.Mock
}

func (m *MockBlobConnector) Upload(ctx context.Context, name string, r io.Reader) error {
	_, _ = io.Copy(io.Discard, r)
	args := m.Called(ctx, name, r)
	return args.Error(0)
}

func (m *MockBlobConnector) Download(ctx context.Context, name string) (io.ReadCloser, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockBlobConnector) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// MockDataCollector is a mock implementation of exports.DataCollector
type MockDataCollector struct {
	mock.Mock
}

func (m *MockDataCollector) Collect(ctx context.Context, userID uint) (*exports.Bundle, *library.User, []*library.Edition, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, nil, nil, args.Error(3)
	}
	return args.Get(0).(*exports.Bundle), args.Get(1).(*library.User), args.Get(2).([]*library.Edition), args.Error(3)
}

// MockArchiver is a mock implementation of exports.Archiver. An optional
// second return value is written to w as the archive contents.
type MockArchiver struct {
	mock.Mock
}

func (m *MockArchiver) Archive(ctx context.Context, w io.Writer, bundle *exports.Bundle, user *library.User, editions []*library.Edition) error {
	args := m.Called(ctx, w, bundle, user, editions)
	if len(args) > 1 {
		if _, err := w.Write(args.Get(1).([]byte)); err != nil {
			return err
		}
	}
	return args.Error(0)
}

// MockTaskQueue is a mock implementation of exports.TaskQueue
type MockTaskQueue struct {
	mock.Mock
}

func (m *MockTaskQueue) Enqueue(ctx context.Context, task *exports.ExportTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskQueue) Consume(ctx context.Context, handler exports.TaskHandler) error {
	args := m.Called(ctx, handler)
	return args.Error(0)
}

func (m *MockTaskQueue) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockJobObserver is a mock implementation of exports.JobObserver
type MockJobObserver struct {
	mock.Mock
}

func (m *MockJobObserver) JobStarted() {
	m.Called()
}

func (m *MockJobObserver) JobFinished(status exports.Status, duration time.Duration) {
	m.Called(status, duration)
}

// MockExportJobService is a mock implementation of exports.ExportJobService
type MockExportJobService struct {
	mock.Mock
}

func (m *MockExportJobService) StartJob(ctx context.Context, userID uint) (*exports.ExportJob, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exports.ExportJob), args.Error(1)
}

func (m *MockExportJobService) List(ctx context.Context, userID uint) ([]*exports.ExportJob, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*exports.ExportJob), args.Error(1)
}

func (m *MockExportJobService) GetByID(ctx context.Context, jobID string, userID uint) (*exports.ExportJob, error) {
	args := m.Called(ctx, jobID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exports.ExportJob), args.Error(1)
}

func (m *MockExportJobService) Stop(ctx context.Context, jobID string, userID uint) (*exports.ExportJob, error) {
	args := m.Called(ctx, jobID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exports.ExportJob), args.Error(1)
}

func (m *MockExportJobService) PruneExpired(ctx context.Context, cutoff time.Time) (int, error) {
	args := m.Called(ctx, cutoff)
	return args.Int(0), args.Error(1)
}

func (m *MockExportJobService) FailUnfinished(ctx context.Context, reason string) (int, error) {
	args := m.Called(ctx, reason)
	return args.Int(0), args.Error(1)
}
