//go:build integration
// +build integration

package connector

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MGTheTrain/shelf-export/internal/domain/blobs"
	"github.com/MGTheTrain/shelf-export/internal/pkg/config"
	"github.com/MGTheTrain/shelf-export/internal/pkg/testutil"
)

func newTestAzureBlobConnector(t *testing.T) *AzureBlobConnector {
	t.Helper()
	logger := testutil.SetupTestLogger(t)

	settings := &config.StorageSettings{
		Provider:         config.AzureStorageProvider,
		ConnectionString: TestConnectionString,
		ContainerName:    TestContainerName,
	}

	connector, err := NewAzureBlobConnector(context.Background(), settings, logger)
	require.NoError(t, err)
	return connector
}

func TestAzureBlobConnector_UploadDownload(t *testing.T) {
	connector := newTestAzureBlobConnector(t)
	ctx := context.Background()

	name := "exports/" + uuid.NewString() + ".tar.gz"
	content := []byte("archive content")

	require.NoError(t, connector.Upload(ctx, name, bytes.NewReader(content)))
	t.Cleanup(func() { _ = connector.Delete(ctx, name) })

	rc, err := connector.Download(ctx, name)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestAzureBlobConnector_Download_NotFound(t *testing.T) {
	connector := newTestAzureBlobConnector(t)

	_, err := connector.Download(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, blobs.ErrBlobNotFound)
}

func TestAzureBlobConnector_Delete(t *testing.T) {
	connector := newTestAzureBlobConnector(t)
	ctx := context.Background()

	name := uuid.NewString() + ".txt"
	require.NoError(t, connector.Upload(ctx, name, bytes.NewReader([]byte("x"))))
	require.NoError(t, connector.Delete(ctx, name))

	_, err := connector.Download(ctx, name)
	assert.ErrorIs(t, err, blobs.ErrBlobNotFound)

	// deleting again is not an error
	assert.NoError(t, connector.Delete(ctx, name))
}

func TestAzureBlobConnector_ExistingContainer(t *testing.T) {
	newTestAzureBlobConnector(t)
	// a second connector must accept the container created by the first
	newTestAzureBlobConnector(t)
}
