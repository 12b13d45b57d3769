package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Rotation bounds of the file logger
const (
	MaxLogFileSizeMB  = 100
	MaxLogFileBackups = 10
	MaxLogFileAgeDays = 365
)

// LoggerSettings selects the log sink. File logs are rotated by size and age.
type LoggerSettings struct {
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=info debug error warning"`
	LogType  string `mapstructure:"log_type" validate:"required,oneof=console file"`
	// Service is attached to every record, empty omits the attribute
	Service    string `mapstructure:"service"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// Validate checks that all fields in LoggerSettings are valid
func (s *LoggerSettings) Validate() error {
	validate := validator.New()
	validate.RegisterStructValidation(fileRotationValidation, LoggerSettings{})

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for LoggerSettings: %w", err)
	}
	return nil
}

// fileRotationValidation requires a path and bounded rotation settings for file logs
func fileRotationValidation(sl validator.StructLevel) {
	s := sl.Current().Interface().(LoggerSettings)
	if s.LogType != LogTypeFile {
		return
	}

	if s.FilePath == "" {
		sl.ReportError(s.FilePath, "FilePath", "file_path", "required_for_file", "")
	}
	if s.MaxSize < 1 || s.MaxSize > MaxLogFileSizeMB {
		sl.ReportError(s.MaxSize, "MaxSize", "max_size", "rotation_range", fmt.Sprint(MaxLogFileSizeMB))
	}
	if s.MaxBackups < 1 || s.MaxBackups > MaxLogFileBackups {
		sl.ReportError(s.MaxBackups, "MaxBackups", "max_backups", "rotation_range", fmt.Sprint(MaxLogFileBackups))
	}
	if s.MaxAge < 1 || s.MaxAge > MaxLogFileAgeDays {
		sl.ReportError(s.MaxAge, "MaxAge", "max_age", "rotation_range", fmt.Sprint(MaxLogFileAgeDays))
	}
}
