package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio-api/internal/logging"
	"github.com/iliyamo/portfolio-api/internal/media"
)

type Uploader interface {
	Upload(ctx context.Context, r io.Reader) (string, error)
}

// MediaHandler accepts file uploads for images and CVs.
type MediaHandler struct {
	uploader Uploader
	log      logging.Logger
}

// NewMediaHandler accepts a nil uploader; uploads then answer 501.
func NewMediaHandler(uploader Uploader, log logging.Logger) *MediaHandler {
	return &MediaHandler{uploader: uploader, log: log}
}

// Upload stores the multipart field "file" and returns its public URL.
func (h *MediaHandler) Upload(c echo.Context) error {
	if h.uploader == nil {
		return c.JSON(http.StatusNotImplemented, echo.Map{"error": "uploads are not configured"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "multipart field \"file\" required"})
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, h.log, err)
	}
	defer f.Close()

	url, err := h.uploader.Upload(c.Request().Context(), f)
	switch {
	case errors.Is(err, media.ErrTooLarge):
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": err.Error()})
	case errors.Is(err, media.ErrEmpty):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, media.ErrUnsupportedType):
		return c.JSON(http.StatusUnsupportedMediaType, echo.Map{"error": err.Error()})
	case err != nil:
		return respondError(c, h.log, err)
	}
	h.log.Info(c.Request().Context(), "file uploaded", "url", url, "filename", fh.Filename)
	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}
