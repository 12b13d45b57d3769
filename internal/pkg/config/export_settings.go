package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/MGTheTrain/shelf-export/internal/pkg/validators"
)

// ExportSettings controls how export bundles reference the originating instance
// and how long finished archives are retained.
type ExportSettings struct {
	// Domain is the public host name of this instance, used to build absolute image URLs
	Domain string `mapstructure:"domain" validate:"required,hostname_port|hostname"`
	// MediaURL is the URL path media files are served under
	MediaURL      string `mapstructure:"media_url" validate:"required,startswith=/,endswith=/"`
	ArchivePrefix string `mapstructure:"archive_prefix" validate:"blobprefix"`
	// RetentionDays is how long finished archives are kept; 0 keeps them forever
	RetentionDays int `mapstructure:"retention_days" validate:"min=0"`
}

// Validate checks that all fields in ExportSettings are valid
func (s *ExportSettings) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("blobprefix", validators.BlobPrefixValidation); err != nil {
		return fmt.Errorf("failed to register blobprefix validation: %w", err)
	}

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for ExportSettings: %w", err)
	}
	return nil
}
