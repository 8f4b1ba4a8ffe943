package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio-api/internal/logging"
	"github.com/iliyamo/portfolio-api/internal/model"
	"github.com/iliyamo/portfolio-api/internal/repository"
)

type ProjectStore interface {
	List(ctx context.Context, f repository.ProjectFilter) ([]model.Project, error)
	GetByID(ctx context.Context, id uint64) (model.Project, error)
	GetBySlug(ctx context.Context, slug string) (model.Project, error)
	Create(ctx context.Context, p model.Project) (model.Project, error)
	Update(ctx context.Context, id uint64, patch model.ProjectPatch) error
	Delete(ctx context.Context, id uint64) error
}

// ProjectHandler serves portfolio projects.  Reads are public; writes are
// limited to the owner and admins.
type ProjectHandler struct {
	projects ProjectStore
	log      logging.Logger
}

func NewProjectHandler(projects ProjectStore, log logging.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, log: log}
}

// List supports ?username= and ?status= filters.
func (h *ProjectHandler) List(c echo.Context) error {
	f := repository.ProjectFilter{
		Username: strings.TrimSpace(c.QueryParam("username")),
		Status:   strings.TrimSpace(c.QueryParam("status")),
	}
	switch f.Status {
	case "", model.ProjectDraft, model.ProjectPublished, model.ProjectArchived:
	default:
		return respondError(c, h.log, &model.ValidationError{Fields: map[string]string{"status": "must be one of draft, published, archived"}})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	list, err := h.projects.List(ctx, f)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ProjectHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	p, err := h.projects.GetByID(ctx, id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) GetBySlug(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	p, err := h.projects.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Create stores a project owned by the caller.
func (h *ProjectHandler) Create(c echo.Context) error {
	u, err := actor(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var req model.NewProject
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, h.log, err)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	p, err := h.projects.Create(ctx, req.Project(u.ID))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProjectHandler) Update(c echo.Context) error {
	return updateOwned(c, h.log, h.projects.GetByID, h.projects.Update)
}

func (h *ProjectHandler) Delete(c echo.Context) error {
	return deleteOwned(c, h.log, h.projects.GetByID, h.projects.Delete)
}
