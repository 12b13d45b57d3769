package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/MGTheTrain/shelf-export/internal/domain/blobs"
	"github.com/MGTheTrain/shelf-export/internal/domain/exports"
	"github.com/MGTheTrain/shelf-export/internal/domain/library"
	"github.com/MGTheTrain/shelf-export/internal/infrastructure/archive"
	"github.com/MGTheTrain/shelf-export/internal/pkg/logger"
)

// tarArchiver implements the Archiver interface writing tar.gz archives with images from the media store
type tarArchiver struct {
	media  blobs.BlobConnector
	logger logger.Logger
}

// NewTarArchiver creates a new instance of Archiver
func NewTarArchiver(media blobs.BlobConnector, logger logger.Logger) (exports.Archiver, error) {
	return &tarArchiver{
		media:  media,
		logger: logger,
	}, nil
}

// Archive writes archive.json, the avatar as images/avatar.<ext> and every cover at its storage path below images/
func (a *tarArchiver) Archive(ctx context.Context, w io.Writer, bundle *exports.Bundle, user *library.User, editions []*library.Edition) error {
	data, err := exports.EncodeBundle(bundle)
	if err != nil {
		return err
	}

	aw := archive.NewWriter(w)
	if err := aw.WriteBundle(data); err != nil {
		return err
	}

	if user.HasAvatar() {
		if err := a.addImage(ctx, aw, user.Avatar, "avatar"+path.Ext(user.Avatar)); err != nil {
			return err
		}
	}

	for _, edition := range editions {
		if edition.Book == nil || !edition.Book.HasCover() {
			continue
		}
		cover := edition.Book.Cover
		if aw.HasEntry(path.Join(archive.ImagesDir, cover)) {
			continue
		}
		if err := a.addImage(ctx, aw, cover, cover); err != nil {
			return err
		}
	}

	return aw.Close()
}

// addImage copies a media blob into the archive; missing blobs are skipped
func (a *tarArchiver) addImage(ctx context.Context, aw *archive.Writer, blobName, entryName string) error {
	rc, err := a.media.Download(ctx, blobName)
	if err != nil {
		if errors.Is(err, blobs.ErrBlobNotFound) {
			a.logger.Warn("Skipping missing image", "image", blobName)
			return nil
		}
		return fmt.Errorf("failed to read image %s: %w", blobName, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("failed to read image %s: %w", blobName, err)
	}
	return aw.AddImage(entryName, data)
}
