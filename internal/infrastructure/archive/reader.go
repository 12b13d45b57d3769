package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// ErrMissingBundle is returned when an archive has no archive.json entry
var ErrMissingBundle = errors.New("archive has no " + BundleFileName)

// Contents is the decoded content of an export archive
type Contents struct {
	// Bundle holds the raw archive.json bytes
	Bundle []byte
	// Images maps paths relative to images/ to their content
	Images map[string][]byte
}

// ImageNames returns the sorted image paths
func (c *Contents) ImageNames() []string {
	names := make([]string, 0, len(c.Images))
	for name := range c.Images {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Read decodes a tar.gz export archive. Entries other than archive.json and
// regular files below images/ are ignored.
func Read(r io.Reader) (*Contents, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer gz.Close()

	contents := &Contents{Images: make(map[string][]byte)}
	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar entry: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		switch {
		case header.Name == BundleFileName:
			if contents.Bundle, err = io.ReadAll(tr); err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", BundleFileName, err)
			}
		case strings.HasPrefix(header.Name, ImagesDir+"/"):
			data, err := io.ReadAll(tr)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", header.Name, err)
			}
			contents.Images[strings.TrimPrefix(header.Name, ImagesDir+"/")] = data
		}
	}

	if contents.Bundle == nil {
		return nil, ErrMissingBundle
	}
	return contents, nil
}
