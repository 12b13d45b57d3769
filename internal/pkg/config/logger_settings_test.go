//go:build unit
// +build unit

package config

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFileLoggerSettings() LoggerSettings {
	return LoggerSettings{
		LogLevel:   LogLevelInfo,
		LogType:    LogTypeFile,
		Service:    "shelf-export-worker",
		FilePath:   "/var/log/shelf-export/worker.log",
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}
}

func TestLoggerSettings_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*LoggerSettings)
		failedField string
	}{
		{name: "valid file logger", mutate: func(*LoggerSettings) {}},
		{
			name: "console logger ignores rotation settings",
			mutate: func(s *LoggerSettings) {
				s.LogType = LogTypeConsole
				s.FilePath = ""
				s.MaxSize = 0
			},
		},
		{name: "missing log level", mutate: func(s *LoggerSettings) { s.LogLevel = "" }, failedField: "LogLevel"},
		{name: "unknown log level", mutate: func(s *LoggerSettings) { s.LogLevel = "trace" }, failedField: "LogLevel"},
		{name: "unknown log type", mutate: func(s *LoggerSettings) { s.LogType = "syslog" }, failedField: "LogType"},
		{name: "file logger without path", mutate: func(s *LoggerSettings) { s.FilePath = "" }, failedField: "FilePath"},
		{name: "max size zero", mutate: func(s *LoggerSettings) { s.MaxSize = 0 }, failedField: "MaxSize"},
		{name: "max size above bound", mutate: func(s *LoggerSettings) { s.MaxSize = MaxLogFileSizeMB + 1 }, failedField: "MaxSize"},
		{name: "max backups above bound", mutate: func(s *LoggerSettings) { s.MaxBackups = MaxLogFileBackups + 1 }, failedField: "MaxBackups"},
		{name: "max age zero", mutate: func(s *LoggerSettings) { s.MaxAge = 0 }, failedField: "MaxAge"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := validFileLoggerSettings()
			tt.mutate(&settings)

			err := settings.Validate()
			if tt.failedField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var validationErrs validator.ValidationErrors
			require.True(t, errors.As(err, &validationErrs))
			assert.Equal(t, tt.failedField, validationErrs[0].Field())
		})
	}
}

func TestLoggerSettings_Validate_ReportsEveryRotationField(t *testing.T) {
	settings := LoggerSettings{LogLevel: LogLevelDebug, LogType: LogTypeFile, FilePath: "/tmp/shelf.log"}

	err := settings.Validate()
	require.Error(t, err)

	var validationErrs validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrs))

	fields := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, fe.Field())
	}
	assert.ElementsMatch(t, []string{"MaxSize", "MaxBackups", "MaxAge"}, fields)
}
