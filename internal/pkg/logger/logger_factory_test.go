//go:build unit
// +build unit

package logger

import (
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MGTheTrain/shelf-export/internal/pkg/config"
)

func resetLoggerSingleton() {
	loggerInstance = nil
	loggerErr = nil
	loggerOnce = sync.Once{}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		settings config.LoggerSettings
		wantErr  bool
	}{
		{
			name:     "console",
			settings: config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: config.LogTypeConsole},
		},
		{
			name: "rotated file",
			settings: config.LoggerSettings{
				LogLevel:   config.LogLevelDebug,
				LogType:    config.LogTypeFile,
				FilePath:   filepath.Join(t.TempDir(), "shelf-export.log"),
				MaxSize:    5,
				MaxBackups: 2,
				MaxAge:     7,
			},
		},
		{
			name:     "unknown level",
			settings: config.LoggerSettings{LogLevel: "verbose", LogType: config.LogTypeConsole},
			wantErr:  true,
		},
		{
			name:     "file without rotation",
			settings: config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: config.LogTypeFile, FilePath: "/tmp/x.log"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(&tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, log)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestNew_AttachesService(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "api.log")

	log, err := New(&config.LoggerSettings{
		LogLevel:   config.LogLevelInfo,
		LogType:    config.LogTypeFile,
		Service:    "shelf-export-rest-api",
		FilePath:   logPath,
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
	})
	require.NoError(t, err)
	log.Info("Server started")

	records := readJSONRecords(t, logPath)
	require.Len(t, records, 1)
	assert.Equal(t, "shelf-export-rest-api", records[0]["service"])
}

func TestGetLogger_BeforeInit(t *testing.T) {
	t.Cleanup(resetLoggerSingleton)
	resetLoggerSingleton()

	log, err := GetLogger()
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.Nil(t, log)
}

func TestInitLogger_KeepsFirstInstance(t *testing.T) {
	t.Cleanup(resetLoggerSingleton)
	resetLoggerSingleton()

	require.NoError(t, InitLogger(&config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: config.LogTypeConsole}))
	first, err := GetLogger()
	require.NoError(t, err)

	require.NoError(t, InitLogger(&config.LoggerSettings{LogLevel: config.LogLevelDebug, LogType: config.LogTypeConsole}))
	second, err := GetLogger()
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestInitLogger_InvalidSettingsLeaveNoInstance(t *testing.T) {
	t.Cleanup(resetLoggerSingleton)
	resetLoggerSingleton()

	assert.Error(t, InitLogger(&config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: "syslog"}))

	_, err := GetLogger()
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel(config.LogLevelDebug))
	assert.Equal(t, slog.LevelInfo, parseLevel(config.LogLevelInfo))
	assert.Equal(t, slog.LevelWarn, parseLevel(config.LogLevelWarning))
	assert.Equal(t, slog.LevelError, parseLevel(config.LogLevelError))
	assert.Equal(t, slog.LevelInfo, parseLevel("unknown"))
}
