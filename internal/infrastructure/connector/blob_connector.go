package connector

import (
	"context"
	"fmt"

	"github.com/MGTheTrain/shelf-export/internal/domain/blobs"
	"github.com/MGTheTrain/shelf-export/internal/pkg/config"
	"github.com/MGTheTrain/shelf-export/internal/pkg/logger"
)

// NewBlobConnector creates the blob connector selected by settings.Provider
func NewBlobConnector(ctx context.Context, settings *config.StorageSettings, logger logger.Logger) (blobs.BlobConnector, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	switch settings.Provider {
	case config.LocalStorageProvider:
		connector, err := NewLocalBlobConnector(settings, logger)
		if err != nil {
			return nil, err
		}
		return connector, nil
	case config.AzureStorageProvider:
		connector, err := NewAzureBlobConnector(ctx, settings, logger)
		if err != nil {
			return nil, err
		}
		return connector, nil
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", settings.Provider)
	}
}
