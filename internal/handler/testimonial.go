package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio-api/internal/logging"
	"github.com/iliyamo/portfolio-api/internal/model"
)

type TestimonialStore interface {
	List(ctx context.Context, username string) ([]model.Testimonial, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Testimonial, error)
	GetByID(ctx context.Context, id uint64) (model.Testimonial, error)
	Create(ctx context.Context, t model.Testimonial) (model.Testimonial, error)
	Update(ctx context.Context, id uint64, patch model.TestimonialPatch) error
	Delete(ctx context.Context, id uint64) error
}

type TestimonialHandler struct {
	testimonials TestimonialStore
	log          logging.Logger
}

func NewTestimonialHandler(testimonials TestimonialStore, log logging.Logger) *TestimonialHandler {
	return &TestimonialHandler{testimonials: testimonials, log: log}
}

func (h *TestimonialHandler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	list, err := h.testimonials.List(ctx, strings.TrimSpace(c.QueryParam("username")))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, list)
}

// Mine lists the caller's own testimonials.
func (h *TestimonialHandler) Mine(c echo.Context) error {
	u, err := actor(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	list, err := h.testimonials.ListByUser(ctx, u.ID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *TestimonialHandler) Create(c echo.Context) error {
	u, err := actor(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var req model.NewTestimonial
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, h.log, err)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	t, err := h.testimonials.Create(ctx, req.Testimonial(u.ID))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *TestimonialHandler) Update(c echo.Context) error {
	return updateOwned(c, h.log, h.testimonials.GetByID, h.testimonials.Update)
}

func (h *TestimonialHandler) Delete(c echo.Context) error {
	return deleteOwned(c, h.log, h.testimonials.GetByID, h.testimonials.Delete)
}
