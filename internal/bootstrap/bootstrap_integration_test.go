//go:build integration
// +build integration

package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MGTheTrain/shelf-export/internal/domain/library"
	"github.com/MGTheTrain/shelf-export/internal/pkg/config"
	"github.com/MGTheTrain/shelf-export/internal/pkg/testutil"
)

func newTestConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	dir := t.TempDir()
	return &config.AppConfig{
		Port:   "8080",
		Logger: config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: config.LogTypeConsole},
		Database: config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  filepath.Join(dir, "shelf.db"),
		},
		MediaStorage:  config.StorageSettings{Provider: config.LocalStorageProvider, RootDir: filepath.Join(dir, "media")},
		ExportStorage: config.StorageSettings{Provider: config.LocalStorageProvider, RootDir: filepath.Join(dir, "exports")},
		Queue:         config.QueueSettings{Type: config.MemoryQueueType, Workers: 1, BufferSize: 4},
		Export:        config.ExportSettings{Domain: "localhost", MediaURL: "/images/", ArchivePrefix: "exports/", RetentionDays: 3},
	}
}

func TestInitialize(t *testing.T) {
	registry := prometheus.NewRegistry()
	deps, err := Initialize(context.Background(), newTestConfig(t), registry, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, deps.Close()) })

	assert.NotNil(t, deps.ExportJobService)
	assert.NotNil(t, deps.ExportDownloadService)
	assert.NotNil(t, deps.TaskProcessor)
	assert.NotNil(t, deps.Pruner)

	_, err = deps.LibraryRepo.GetUserByID(context.Background(), 1)
	assert.ErrorIs(t, err, library.ErrUserNotFound)

	jobs, err := deps.ExportJobService.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestInitialize_UnsupportedStorage(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.MediaStorage.Provider = "s3"

	_, err := Initialize(context.Background(), cfg, nil, testutil.SetupTestLogger(t))
	assert.ErrorContains(t, err, "failed to create media store")
}
