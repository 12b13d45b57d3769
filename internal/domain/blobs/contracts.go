// Package blobs defines the storage abstraction for media files and export archives.
package blobs

import (
	"context"
	"errors"
	"io"
)

// ErrBlobNotFound is returned when no blob exists under the requested name
var ErrBlobNotFound = errors.New("blob not found")

// BlobConnector is an interface for interacting with Blob storage.
// Names are slash-separated paths relative to the store root, e.g. "covers/abc.jpg".
type BlobConnector interface {
	// Upload stores everything read from r under name, replacing an existing blob.
	Upload(ctx context.Context, name string, r io.Reader) error

	// Download opens a blob for reading. The caller must close the returned reader.
	Download(ctx context.Context, name string) (io.ReadCloser, error)

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
}
