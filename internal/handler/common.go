package handler // handler defines http handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio-api/internal/auth"
	"github.com/iliyamo/portfolio-api/internal/logging"
	"github.com/iliyamo/portfolio-api/internal/middleware"
	"github.com/iliyamo/portfolio-api/internal/model"
	"github.com/iliyamo/portfolio-api/internal/repository"
)

// requestTimeout bounds every storage round trip made by a handler.
const requestTimeout = 5 * time.Second

var binder = &echo.DefaultBinder{}

// dbCtx derives the storage context from the request.
func dbCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// bind decodes the request body only.  Path and query parameters are read
// explicitly by each handler.
func bind(c echo.Context, dst any) error {
	if err := binder.BindBody(c, dst); err != nil {
		return errBadBody
	}
	return nil
}

var errBadBody = errors.New("invalid body")

// parseID reads a positive integer path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, &model.ValidationError{Fields: map[string]string{name: "must be a positive integer"}}
	}
	return id, nil
}

// parseBool reads an optional boolean query parameter.  An absent or empty
// value yields nil.
func parseBool(c echo.Context, name string) (*bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, &model.ValidationError{Fields: map[string]string{name: "must be true or false"}}
	}
	return &b, nil
}

// actor returns the caller set by the identity middleware.
func actor(c echo.Context) (model.User, error) {
	u := middleware.CurrentUser(c)
	if u == nil {
		return model.User{}, auth.ErrUnauthenticated
	}
	return *u, nil
}

// loadAuthorized fetches an owned row and checks that the caller may mutate it.
func loadAuthorized[T auth.Owned](ctx context.Context, u model.User, id uint64, get func(context.Context, uint64) (T, error)) (T, error) {
	row, err := get(ctx, id)
	if err != nil {
		return row, err
	}
	if err := auth.Authorize(u, row); err != nil {
		var zero T
		return zero, err
	}
	return row, nil
}

func deleted(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// respondError maps domain errors to status codes.  Unknown errors are logged
// and reported as 500 without detail.
func respondError(c echo.Context, log logging.Logger, err error) error {
	var ve *model.ValidationError
	switch {
	case errors.Is(err, errBadBody):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": ve.Fields})
	case errors.Is(err, auth.ErrUnauthenticated):
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	case errors.Is(err, auth.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "already exists"})
	}
	log.Error(c.Request().Context(), "request failed", "path", c.Path(), "err", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
