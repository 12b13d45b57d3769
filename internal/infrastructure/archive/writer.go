package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
)

const (
	// BundleFileName is the name of the encoded bundle inside the archive
	BundleFileName = "archive.json"
	// ImagesDir is the directory holding avatar and cover images
	ImagesDir = "images"
)

// ErrInvalidEntryName is returned for image names that would escape ImagesDir
var ErrInvalidEntryName = errors.New("invalid archive entry name")

// Writer streams a gzip compressed tar archive
type Writer struct {
	gz      *gzip.Writer
	tw      *tar.Writer
	modTime time.Time
	names   map[string]struct{}
}

// NewWriter returns a Writer writing to w. Close must be called to flush the archive.
func NewWriter(w io.Writer) *Writer {
	gz := gzip.NewWriter(w)
	return &Writer{
		gz:      gz,
		tw:      tar.NewWriter(gz),
		modTime: time.Now().UTC().Truncate(time.Second),
		names:   make(map[string]struct{}),
	}
}

// WriteBundle adds the encoded bundle as archive.json
func (w *Writer) WriteBundle(data []byte) error {
	return w.writeFile(BundleFileName, data)
}

// AddImage adds an image below images/. name is a slash separated relative
// path such as "avatar.png" or "covers/abc.jpg".
func (w *Writer) AddImage(name string, data []byte) error {
	clean := path.Clean(name)
	if name == "" || clean == "." || path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%w: %q", ErrInvalidEntryName, name)
	}
	return w.writeFile(path.Join(ImagesDir, clean), data)
}

// HasEntry reports whether an entry with the given archive path was written
func (w *Writer) HasEntry(name string) bool {
	_, ok := w.names[name]
	return ok
}

// Close finishes the tar stream and flushes the gzip stream
func (w *Writer) Close() error {
	if err := w.tw.Close(); err != nil {
		return fmt.Errorf("failed to close tar stream: %w", err)
	}
	if err := w.gz.Close(); err != nil {
		return fmt.Errorf("failed to close gzip stream: %w", err)
	}
	return nil
}

func (w *Writer) writeFile(name string, data []byte) error {
	header := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     name,
		Mode:     0o644,
		Size:     int64(len(data)),
		ModTime:  w.modTime,
		Format:   tar.FormatPAX,
	}
	if err := w.tw.WriteHeader(header); err != nil {
		return fmt.Errorf("failed to write header for %s: %w", name, err)
	}
	if _, err := w.tw.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	w.names[name] = struct{}{}
	return nil
}
