package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment variables overriding file settings,
// e.g. SHELF_EXPORT_DATABASE_DSN overrides database.dsn.
const EnvPrefix = "SHELF_EXPORT"

// AppConfig is the configuration shared by the REST API, the worker and the CLI
type AppConfig struct {
	Port          string           `mapstructure:"port"`
	Logger        LoggerSettings   `mapstructure:"logger"`
	Database      DatabaseSettings `mapstructure:"database"`
	MediaStorage  StorageSettings  `mapstructure:"media_storage"`
	ExportStorage StorageSettings  `mapstructure:"export_storage"`
	Queue         QueueSettings    `mapstructure:"queue"`
	Auth          AuthSettings     `mapstructure:"auth"`
	Export        ExportSettings   `mapstructure:"export"`
}

// Validate checks every section required by all binaries. Auth is only
// needed by the REST API and is validated there.
func (c *AppConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.MediaStorage.Validate(); err != nil {
		return fmt.Errorf("media storage: %w", err)
	}
	if err := c.ExportStorage.Validate(); err != nil {
		return fmt.Errorf("export storage: %w", err)
	}
	if err := c.Queue.Validate(); err != nil {
		return err
	}
	return c.Export.Validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")

	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("logger.service", "shelf-export")
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)

	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", "shelf-export.db")
	v.SetDefault("database.name", "")
	v.SetDefault("database.max_open_conns", 0)

	for section, rootDir := range map[string]string{"media_storage": "media", "export_storage": "exports"} {
		v.SetDefault(section+".provider", LocalStorageProvider)
		v.SetDefault(section+".root_dir", rootDir)
		v.SetDefault(section+".connection_string", "")
		v.SetDefault(section+".container_name", "")
	}

	v.SetDefault("queue.type", MemoryQueueType)
	v.SetDefault("queue.workers", 2)
	v.SetDefault("queue.buffer_size", 64)
	v.SetDefault("queue.brokers", []string{})
	v.SetDefault("queue.topic", "")
	v.SetDefault("queue.group_id", "shelf-export")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "")

	v.SetDefault("export.domain", "localhost")
	v.SetDefault("export.media_url", "/images/")
	v.SetDefault("export.archive_prefix", "exports/")
	v.SetDefault("export.retention_days", 0)
}

// Load reads the YAML file at path, applies environment overrides and validates the result
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
