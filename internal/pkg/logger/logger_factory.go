package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/MGTheTrain/shelf-export/internal/pkg/config"
)

// ErrNotInitialized is returned by GetLogger before InitLogger succeeded
var ErrNotInitialized = errors.New("logger not initialized: call InitLogger first")

var (
	loggerInstance Logger
	loggerErr      error
	loggerOnce     sync.Once
)

// InitLogger initializes the process wide logger. Only the first call has an
// effect, later settings are ignored.
func InitLogger(settings *config.LoggerSettings) error {
	loggerOnce.Do(func() {
		loggerInstance, loggerErr = New(settings)
	})
	return loggerErr
}

// GetLogger returns the logger set up by InitLogger.
func GetLogger() (Logger, error) {
	if loggerInstance == nil {
		return nil, ErrNotInitialized
	}
	return loggerInstance, nil
}

// New builds a logger for settings without touching the process wide instance.
func New(settings *config.LoggerSettings) (Logger, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var l Logger
	switch settings.LogType {
	case config.LogTypeConsole:
		l = NewConsoleLogger(settings.LogLevel)
	case config.LogTypeFile:
		l = NewFileLogger(settings.LogLevel, settings.FilePath, settings.MaxSize, settings.MaxBackups, settings.MaxAge)
	default:
		return nil, fmt.Errorf("unsupported log type: %s", settings.LogType)
	}

	if settings.Service != "" {
		l = l.With("service", settings.Service)
	}
	return l, nil
}

var levels = map[string]slog.Level{
	config.LogLevelDebug:   slog.LevelDebug,
	config.LogLevelInfo:    slog.LevelInfo,
	config.LogLevelWarning: slog.LevelWarn,
	config.LogLevelError:   slog.LevelError,
}

// parseLevel maps a configured level name to slog, unknown names log at info
func parseLevel(level string) slog.Level {
	if l, ok := levels[level]; ok {
		return l
	}
	return slog.LevelInfo
}
