package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// StorageSettings configures a blob store. The media store holds avatars and
// covers; the export store receives finished archives.
type StorageSettings struct {
	Provider         string `mapstructure:"provider" validate:"required,oneof=local azure"`
	RootDir          string `mapstructure:"root_dir" validate:"required_if=Provider local"`
	ConnectionString string `mapstructure:"connection_string" validate:"required_if=Provider azure"`
	ContainerName    string `mapstructure:"container_name" validate:"required_if=Provider azure"`
}

// Validate checks that all fields in StorageSettings are valid
func (s *StorageSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for StorageSettings: %w", err)
	}
	return nil
}
