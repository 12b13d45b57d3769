//go:build unit
// +build unit

package connector

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MGTheTrain/shelf-export/internal/domain/blobs"
	"github.com/MGTheTrain/shelf-export/internal/pkg/config"
	"github.com/MGTheTrain/shelf-export/internal/pkg/testutil"
)

func newTestLocalBlobConnector(t *testing.T) (*LocalBlobConnector, string) {
	t.Helper()

	root := t.TempDir()
	connector, err := NewLocalBlobConnector(&config.StorageSettings{
		Provider: config.LocalStorageProvider,
		RootDir:  root,
	}, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	return connector, root
}

func TestLocalBlobConnector_UploadDownload(t *testing.T) {
	connector, root := newTestLocalBlobConnector(t)
	ctx := context.Background()

	require.NoError(t, connector.Upload(ctx, "exports/a.tar.gz", bytes.NewReader([]byte("payload"))))
	assert.FileExists(t, filepath.Join(root, "exports", "a.tar.gz"))

	rc, err := connector.Download(ctx, "exports/a.tar.gz")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestLocalBlobConnector_Download_ExistingFile(t *testing.T) {
	connector, root := newTestLocalBlobConnector(t)
	testutil.WriteTestFile(t, root, "covers/hobbit.jpg", []byte("jpeg"))

	rc, err := connector.Download(context.Background(), "covers/hobbit.jpg")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg"), data)
}

func TestLocalBlobConnector_Download_NotFound(t *testing.T) {
	connector, _ := newTestLocalBlobConnector(t)

	_, err := connector.Download(context.Background(), "missing.png")
	assert.ErrorIs(t, err, blobs.ErrBlobNotFound)
}

func TestLocalBlobConnector_RejectsEscapingNames(t *testing.T) {
	connector, _ := newTestLocalBlobConnector(t)
	ctx := context.Background()

	for _, name := range []string{"", "../outside", "/etc/passwd", "a/../../b"} {
		err := connector.Upload(ctx, name, bytes.NewReader(nil))
		assert.Error(t, err, name)
		assert.Contains(t, err.Error(), "invalid blob name")
	}
}

func TestLocalBlobConnector_Upload_CancelledContext(t *testing.T) {
	connector, root := newTestLocalBlobConnector(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := connector.Upload(ctx, "a.bin", bytes.NewReader([]byte("data")))
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(root, "a.bin"))
}

func TestLocalBlobConnector_Delete(t *testing.T) {
	connector, root := newTestLocalBlobConnector(t)
	ctx := context.Background()
	path := testutil.WriteTestFile(t, root, "exports/b.tar.gz", []byte("x"))

	require.NoError(t, connector.Delete(ctx, "exports/b.tar.gz"))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, connector.Delete(ctx, "exports/b.tar.gz"))
}

func TestNewBlobConnector_InvalidSettings(t *testing.T) {
	_, err := NewBlobConnector(context.Background(), &config.StorageSettings{Provider: "s3"}, testutil.SetupTestLogger(t))
	assert.Error(t, err)
}

func TestNewBlobConnector_Local(t *testing.T) {
	connector, err := NewBlobConnector(context.Background(), &config.StorageSettings{
		Provider: config.LocalStorageProvider,
		RootDir:  t.TempDir(),
	}, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	assert.IsType(t, &LocalBlobConnector{}, connector)
}
