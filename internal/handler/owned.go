package handler

// owned.go holds the load, authorize and write sequence shared by every
// resource that carries an owner.

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio-api/internal/auth"
	"github.com/iliyamo/portfolio-api/internal/logging"
)

type validatable interface{ Validate() error }

// updateOwned authorizes the caller against the stored row, applies the
// patch and answers with the reloaded row.  Fields absent from the body are
// left untouched.
func updateOwned[T auth.Owned, P validatable](
	c echo.Context,
	log logging.Logger,
	get func(context.Context, uint64) (T, error),
	update func(context.Context, uint64, P) error,
) error {
	u, err := actor(c)
	if err != nil {
		return respondError(c, log, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if _, err := loadAuthorized(ctx, u, id, get); err != nil {
		return respondError(c, log, err)
	}
	var patch P
	if err := bind(c, &patch); err != nil {
		return respondError(c, log, err)
	}
	if err := patch.Validate(); err != nil {
		return respondError(c, log, err)
	}
	if err := update(ctx, id, patch); err != nil {
		return respondError(c, log, err)
	}
	row, err := get(ctx, id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, row)
}

// deleteOwned authorizes the caller against the stored row and removes it.
func deleteOwned[T auth.Owned](
	c echo.Context,
	log logging.Logger,
	get func(context.Context, uint64) (T, error),
	del func(context.Context, uint64) error,
) error {
	u, err := actor(c)
	if err != nil {
		return respondError(c, log, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if _, err := loadAuthorized(ctx, u, id, get); err != nil {
		return respondError(c, log, err)
	}
	if err := del(ctx, id); err != nil {
		return respondError(c, log, err)
	}
	log.Info(ctx, "deleted", "path", c.Path(), "id", id, "actor", u.ID)
	return deleted(c)
}
