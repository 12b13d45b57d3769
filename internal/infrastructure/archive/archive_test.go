//go:build unit
// +build unit

package archive

import (
	"archive/tar"
	"bytes"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteBundle([]byte(`{"user":{}}`)))
	require.NoError(t, w.AddImage("avatar.png", []byte("png")))
	require.NoError(t, w.AddImage("covers/hobbit.jpg", []byte("jpeg")))
	assert.True(t, w.HasEntry("images/covers/hobbit.jpg"))
	assert.False(t, w.HasEntry("images/covers/dune.jpg"))
	require.NoError(t, w.Close())

	contents, err := Read(&buf)
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":{}}`, string(contents.Bundle))
	assert.Equal(t, map[string][]byte{
		"avatar.png":        []byte("png"),
		"covers/hobbit.jpg": []byte("jpeg"),
	}, contents.Images)
	assert.ElementsMatch(t, []string{"avatar.png", "covers/hobbit.jpg"}, contents.ImageNames())
}

func TestWriter_EntryLayout(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteBundle([]byte("{}")))
	require.NoError(t, w.AddImage("covers/a.jpg", []byte("a")))
	require.NoError(t, w.Close())

	gz, err := gzip.NewReader(&buf)
	require.NoError(t, err)
	tr := tar.NewReader(gz)

	var names []string
	for {
		header, err := tr.Next()
		if err != nil {
			break
		}
		names = append(names, header.Name)
	}
	assert.Equal(t, []string{"archive.json", "images/covers/a.jpg"}, names)
}

func TestWriter_AddImage_InvalidName(t *testing.T) {
	w := NewWriter(&bytes.Buffer{})

	for _, name := range []string{"", "../etc/passwd", "/abs.png", "covers/../../x"} {
		assert.ErrorIs(t, w.AddImage(name, []byte("x")), ErrInvalidEntryName, name)
	}
}

func TestRead_MissingBundle(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.AddImage("avatar.png", []byte("png")))
	require.NoError(t, w.Close())

	_, err := Read(&buf)
	assert.ErrorIs(t, err, ErrMissingBundle)
}

func TestRead_NotGzip(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("plain text")))
	assert.Error(t, err)
}
