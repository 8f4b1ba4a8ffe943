package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio-api/internal/logging"
	"github.com/iliyamo/portfolio-api/internal/middleware"
	"github.com/iliyamo/portfolio-api/internal/model"
)

type ProfileStore interface {
	First(ctx context.Context) (model.Profile, error)
	GetByID(ctx context.Context, id uint64) (model.Profile, error)
	GetByUserID(ctx context.Context, userID uint64) (model.Profile, error)
	GetByUsername(ctx context.Context, username string) (model.Profile, error)
	Create(ctx context.Context, p model.Profile) (model.Profile, error)
	Update(ctx context.Context, id uint64, patch model.ProfilePatch) error
	Delete(ctx context.Context, id uint64) error
}

// ProfileHandler serves the hero/about profile.
type ProfileHandler struct {
	profiles ProfileStore
	log      logging.Logger
}

func NewProfileHandler(profiles ProfileStore, log logging.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, log: log}
}

// Get resolves which profile to show: ?username wins, then the caller's own,
// then the first profile for anonymous visitors.
func (h *ProfileHandler) Get(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	var (
		p   model.Profile
		err error
	)
	switch name := strings.TrimSpace(c.QueryParam("username")); {
	case name != "":
		p, err = h.profiles.GetByUsername(ctx, name)
	case middleware.CurrentUser(c) != nil:
		p, err = h.profiles.GetByUserID(ctx, middleware.CurrentUser(c).ID)
	default:
		p, err = h.profiles.First(ctx)
	}
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Create makes the caller's profile.  A second profile is a conflict.
func (h *ProfileHandler) Create(c echo.Context) error {
	u, err := actor(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var req model.NewProfile
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, h.log, err)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	p, err := h.profiles.Create(ctx, req.Profile(u.ID))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, p)
}

// UpdateOwn patches the caller's profile.
func (h *ProfileHandler) UpdateOwn(c echo.Context) error {
	u, err := actor(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var patch model.ProfilePatch
	if err := bind(c, &patch); err != nil {
		return respondError(c, h.log, err)
	}
	if err := patch.Validate(); err != nil {
		return respondError(c, h.log, err)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	p, err := h.profiles.GetByUserID(ctx, u.ID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.profiles.Update(ctx, p.ID, patch); err != nil {
		return respondError(c, h.log, err)
	}
	if p, err = h.profiles.GetByID(ctx, p.ID); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) Update(c echo.Context) error {
	return updateOwned(c, h.log, h.profiles.GetByID, h.profiles.Update)
}

func (h *ProfileHandler) Delete(c echo.Context) error {
	return deleteOwned(c, h.log, h.profiles.GetByID, h.profiles.Delete)
}
