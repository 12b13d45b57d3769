package connector

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/MGTheTrain/shelf-export/internal/domain/blobs"
	"github.com/MGTheTrain/shelf-export/internal/pkg/config"
	"github.com/MGTheTrain/shelf-export/internal/pkg/logger"
)

// AzureBlobConnector stores blobs in one Azure Blob Storage container
type AzureBlobConnector struct {
	client        *azblob.Client
	containerName string
	logger        logger.Logger
}

// NewAzureBlobConnector connects to the storage account and creates the container if it does not exist
func NewAzureBlobConnector(ctx context.Context, settings *config.StorageSettings, logger logger.Logger) (*AzureBlobConnector, error) {
	client, err := azblob.NewClientFromConnectionString(settings.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create azure blob client: %w", err)
	}

	_, err = client.CreateContainer(ctx, settings.ContainerName, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return nil, fmt.Errorf("failed to create container %s: %w", settings.ContainerName, err)
	}

	return &AzureBlobConnector{
		client:        client,
		containerName: settings.ContainerName,
		logger:        logger,
	}, nil
}

// Upload streams r into a block blob
func (c *AzureBlobConnector) Upload(ctx context.Context, name string, r io.Reader) error {
	if _, err := c.client.UploadStream(ctx, c.containerName, name, r, nil); err != nil {
		return fmt.Errorf("failed to upload blob %s: %w", name, err)
	}

	c.logger.Info("Uploaded blob", "container", c.containerName, "name", name)
	return nil
}

// Download opens a stream over the blob content
func (c *AzureBlobConnector) Download(ctx context.Context, name string) (io.ReadCloser, error) {
	resp, err := c.client.DownloadStream(ctx, c.containerName, name, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, fmt.Errorf("%w: %s", blobs.ErrBlobNotFound, name)
		}
		return nil, fmt.Errorf("failed to download blob %s: %w", name, err)
	}
	return resp.Body, nil
}

// Delete removes the blob; a missing blob is not an error
func (c *AzureBlobConnector) Delete(ctx context.Context, name string) error {
	_, err := c.client.DeleteBlob(ctx, c.containerName, name, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.BlobNotFound) {
		return fmt.Errorf("failed to delete blob %s: %w", name, err)
	}

	c.logger.Info("Deleted blob", "container", c.containerName, "name", name)
	return nil
}
