package logger

import (
	"log/slog"

	"github.com/natefinch/lumberjack"
)

// NewFileLogger writes JSON records to filePath. The file is rotated once it
// reaches maxSize megabytes and rotated files are gzip compressed.
func NewFileLogger(level string, filePath string, maxSize int, maxBackups int, maxAge int) Logger {
	return NewSlogLogger(slog.NewJSONHandler(&lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		LocalTime:  false,
		Compress:   true,
	}, &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: parseLevel(level) == slog.LevelDebug,
	}))
}
