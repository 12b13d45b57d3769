package connector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MGTheTrain/shelf-export/internal/domain/blobs"
	"github.com/MGTheTrain/shelf-export/internal/pkg/config"
	"github.com/MGTheTrain/shelf-export/internal/pkg/logger"
)

// LocalBlobConnector stores blobs as files below a root directory
type LocalBlobConnector struct {
	rootDir string
	logger  logger.Logger
}

// NewLocalBlobConnector creates the root directory if needed and returns a connector for it
func NewLocalBlobConnector(settings *config.StorageSettings, logger logger.Logger) (*LocalBlobConnector, error) {
	if settings.RootDir == "" {
		return nil, errors.New("root directory is required for local storage")
	}
	if err := os.MkdirAll(settings.RootDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create storage root %s: %w", settings.RootDir, err)
	}

	return &LocalBlobConnector{
		rootDir: settings.RootDir,
		logger:  logger,
	}, nil
}

// Upload writes r to the named file, replacing it atomically once fully written
func (c *LocalBlobConnector) Upload(ctx context.Context, name string, r io.Reader) error {
	path, err := c.resolve(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for blob %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for blob %s: %w", name, err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	size, err := io.Copy(tmp, &contextReader{ctx: ctx, r: r})
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write blob %s: %w", name, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to store blob %s: %w", name, err)
	}

	c.logger.Info("Uploaded blob", "name", name, "size", size)
	return nil
}

// Download opens the named file
func (c *LocalBlobConnector) Download(ctx context.Context, name string) (io.ReadCloser, error) {
	path, err := c.resolve(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path) // #nosec G304 -- path is confined to rootDir by resolve
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", blobs.ErrBlobNotFound, name)
		}
		return nil, fmt.Errorf("failed to open blob %s: %w", name, err)
	}
	return f, nil
}

// Delete removes the named file; a missing file is not an error
func (c *LocalBlobConnector) Delete(ctx context.Context, name string) error {
	path, err := c.resolve(name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete blob %s: %w", name, err)
	}

	c.logger.Info("Deleted blob", "name", name)
	return nil
}

// resolve maps a slash separated blob name to a path below rootDir
func (c *LocalBlobConnector) resolve(name string) (string, error) {
	local := filepath.FromSlash(name)
	if name == "" || !filepath.IsLocal(local) {
		return "", fmt.Errorf("invalid blob name %q", name)
	}
	return filepath.Join(c.rootDir, local), nil
}

// contextReader stops a copy once ctx is done
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}
