package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio-api/internal/logging"
	"github.com/iliyamo/portfolio-api/internal/model"
)

// SiteStore covers the admin-curated content: resume timeline, blog idea
// backlog and the social content studio.
type SiteStore interface {
	ListExperiences(ctx context.Context) ([]model.Experience, error)
	GetExperience(ctx context.Context, id uint64) (model.Experience, error)
	CreateExperience(ctx context.Context, e model.Experience) (model.Experience, error)
	UpdateExperience(ctx context.Context, id uint64, patch model.ExperiencePatch) error
	DeleteExperience(ctx context.Context, id uint64) error

	ListIdeas(ctx context.Context) ([]model.BlogIdea, error)
	CreateIdea(ctx context.Context, b model.NewBlogIdea) (model.BlogIdea, error)
	DeleteIdea(ctx context.Context, id uint64) error

	ListTopics(ctx context.Context) ([]model.ContentTopic, error)
	GetTopic(ctx context.Context, id uint64) (model.ContentTopic, error)
	CreateTopic(ctx context.Context, t model.ContentTopic) (model.ContentTopic, error)
	UpdateTopic(ctx context.Context, id uint64, patch model.ContentTopicPatch) error

	GetPost(ctx context.Context, id uint64) (model.ContentPost, error)
	CreatePost(ctx context.Context, p model.ContentPost) (model.ContentPost, error)
	UpdatePost(ctx context.Context, id uint64, patch model.ContentPostPatch) error
}

type SiteHandler struct {
	site SiteStore
	log  logging.Logger
}

func NewSiteHandler(site SiteStore, log logging.Logger) *SiteHandler {
	return &SiteHandler{site: site, log: log}
}

// ----- experiences -----

func (h *SiteHandler) ListExperiences(c echo.Context) error {
	return listRows(c, h.log, h.site.ListExperiences)
}

func (h *SiteHandler) CreateExperience(c echo.Context) error {
	var req model.NewExperience
	return create(c, h.log, &req, func(ctx context.Context) (model.Experience, error) {
		return h.site.CreateExperience(ctx, req.Experience())
	})
}

func (h *SiteHandler) UpdateExperience(c echo.Context) error {
	return updateRow(c, h.log, h.site.GetExperience, h.site.UpdateExperience)
}

func (h *SiteHandler) DeleteExperience(c echo.Context) error {
	return deleteRow(c, h.log, h.site.DeleteExperience)
}

// ----- blog ideas -----

func (h *SiteHandler) ListIdeas(c echo.Context) error {
	return listRows(c, h.log, h.site.ListIdeas)
}

func (h *SiteHandler) CreateIdea(c echo.Context) error {
	var req model.NewBlogIdea
	return create(c, h.log, &req, func(ctx context.Context) (model.BlogIdea, error) {
		return h.site.CreateIdea(ctx, req)
	})
}

func (h *SiteHandler) DeleteIdea(c echo.Context) error {
	return deleteRow(c, h.log, h.site.DeleteIdea)
}

// ----- content studio -----

// ListTopics returns topics with their posts embedded.
func (h *SiteHandler) ListTopics(c echo.Context) error {
	return listRows(c, h.log, h.site.ListTopics)
}

func (h *SiteHandler) CreateTopic(c echo.Context) error {
	var req model.NewContentTopic
	return create(c, h.log, &req, func(ctx context.Context) (model.ContentTopic, error) {
		return h.site.CreateTopic(ctx, req.Topic())
	})
}

func (h *SiteHandler) UpdateTopic(c echo.Context) error {
	return updateRow(c, h.log, h.site.GetTopic, h.site.UpdateTopic)
}

// CreatePost adds a post to an existing topic.  An unknown topic is a 404.
func (h *SiteHandler) CreatePost(c echo.Context) error {
	var req model.NewContentPost
	return create(c, h.log, &req, func(ctx context.Context) (model.ContentPost, error) {
		return h.site.CreatePost(ctx, req.Post())
	})
}

func (h *SiteHandler) UpdatePost(c echo.Context) error {
	return updateRow(c, h.log, h.site.GetPost, h.site.UpdatePost)
}

// ----- shared shapes for unowned rows -----

func listRows[T any](c echo.Context, log logging.Logger, fetch func(context.Context) ([]T, error)) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	rows, err := fetch(ctx)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// create binds and validates req, then runs store and answers 201.
func create[T any](c echo.Context, log logging.Logger, req validatable, store func(context.Context) (T, error)) error {
	if err := bind(c, req); err != nil {
		return respondError(c, log, err)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, log, err)
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	row, err := store(ctx)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusCreated, row)
}

// updateRow patches a row that has no owner.  The route is expected to be
// admin-only.
func updateRow[T any, P validatable](
	c echo.Context,
	log logging.Logger,
	get func(context.Context, uint64) (T, error),
	update func(context.Context, uint64, P) error,
) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}
	var patch P
	if err := bind(c, &patch); err != nil {
		return respondError(c, log, err)
	}
	if err := patch.Validate(); err != nil {
		return respondError(c, log, err)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if _, err := get(ctx, id); err != nil {
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

func deleteRow(c echo.Context, log logging.Logger, del func(context.Context, uint64) error) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := del(ctx, id); err != nil {
		return respondError(c, log, err)
	}
	return deleted(c)
}
