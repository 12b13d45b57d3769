//go:build unit
// +build unit

package v1

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/MGTheTrain/shelf-export/internal/domain/exports"
)

// MockExportJobService is a mock implementation of ExportJobService
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

// MockExportDownloadService is a mock implementation of ExportDownloadService
type MockExportDownloadService struct {
	mock.Mock
}

func (m *MockExportDownloadService) DownloadByID(ctx context.Context, jobID string, userID uint) (io.ReadCloser, *exports.ExportJob, error) {
	args := m.Called(ctx, jobID, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(*exports.ExportJob), args.Error(2)
}
