package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/iliyamo/portfolio-api/internal/metrics"
)

var (
	ErrTooLarge        = errors.New("file too large")
	ErrEmpty           = errors.New("file is empty")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// allowedTypes are the content types accepted for upload: images for covers
// and avatars, PDF for the CV.
var allowedTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/svg+xml",
	"application/pdf",
}

// Uploader validates files and writes them to a Store under a random key.
type Uploader struct {
	store    Store
	maxBytes int64
	newID    func() string
}

func NewUploader(store Store, maxBytes int64) *Uploader {
	return &Uploader{store: store, maxBytes: maxBytes, newID: func() string { return uuid.NewString() }}
}

// MaxBytes is the largest accepted upload.
func (u *Uploader) MaxBytes() int64 { return u.maxBytes }

// Upload reads r fully, sniffs its content type and stores it as
// uploads/<uuid><ext>.  The extension follows the detected type, not the
// client's file name.
func (u *Uploader) Upload(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, u.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	switch {
	case int64(len(data)) > u.maxBytes:
		metrics.UploadsTotal.WithLabelValues("too_large").Inc()
		return "", ErrTooLarge
	case len(data) == 0:
		metrics.UploadsTotal.WithLabelValues("empty").Inc()
		return "", ErrEmpty
	}

	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), allowedTypes...) {
		metrics.UploadsTotal.WithLabelValues("rejected_type").Inc()
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
	}

	key := "uploads/" + u.newID() + mt.Extension()
	url, err := u.store.Put(ctx, key, mt.String(), bytes.NewReader(data), int64(len(data)))
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		return "", err
	}
	metrics.UploadsTotal.WithLabelValues("ok").Inc()
	return url, nil
}
