//go:build unit
// +build unit

package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MGTheTrain/shelf-export/internal/domain/blobs"
	"github.com/MGTheTrain/shelf-export/internal/domain/exports"
	"github.com/MGTheTrain/shelf-export/internal/domain/library"
	"github.com/MGTheTrain/shelf-export/internal/infrastructure/archive"
	"github.com/MGTheTrain/shelf-export/internal/pkg/testutil"
)

func blobReader(content string) io.ReadCloser {
	return io.NopCloser(bytes.NewReader([]byte(content)))
}

func TestTarArchiver_Archive(t *testing.T) {
	media := new(MockBlobConnector)
	archiver, err := NewTarArchiver(media, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	user := &library.User{ID: 1, Username: "mouse", Avatar: "avatars/mouse.jpeg"}
	editions := []*library.Edition{
		{BookID: 1, Book: &library.Book{ID: 1, Cover: "covers/a.jpg"}},
		{BookID: 2, Book: &library.Book{ID: 2}},
		{BookID: 3, Book: &library.Book{ID: 3, Cover: "covers/a.jpg"}},
		{BookID: 4, Book: &library.Book{ID: 4, Cover: "covers/gone.jpg"}},
	}
	bundle := exports.NewBundle()
	bundle.User.Username = "mouse"

	media.On("Download", mock.Anything, "avatars/mouse.jpeg").Return(blobReader("avatar"), nil)
	media.On("Download", mock.Anything, "covers/a.jpg").Return(blobReader("cover-a"), nil).Once()
	media.On("Download", mock.Anything, "covers/gone.jpg").Return(nil, blobs.ErrBlobNotFound)

	var buf bytes.Buffer
	require.NoError(t, archiver.Archive(context.Background(), &buf, bundle, user, editions))

	contents, err := archive.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{
		"avatar.jpeg":  []byte("avatar"),
		"covers/a.jpg": []byte("cover-a"),
	}, contents.Images)

	decoded, err := exports.DecodeBundle(contents.Bundle)
	require.NoError(t, err)
	assert.Equal(t, "mouse", decoded.User.Username)
	media.AssertExpectations(t)
}

func TestTarArchiver_Archive_ImageReadError(t *testing.T) {
	media := new(MockBlobConnector)
	archiver, err := NewTarArchiver(media, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	media.On("Download", mock.Anything, "avatars/m.png").Return(nil, errors.New("permission denied"))

	err = archiver.Archive(context.Background(), io.Discard, exports.NewBundle(), &library.User{Avatar: "avatars/m.png"}, nil)
	assert.ErrorContains(t, err, "permission denied")
}
