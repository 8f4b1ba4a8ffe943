package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio-api/internal/auth"
	"github.com/iliyamo/portfolio-api/internal/logging"
	"github.com/iliyamo/portfolio-api/internal/middleware"
	"github.com/iliyamo/portfolio-api/internal/model"
	"github.com/iliyamo/portfolio-api/internal/repository"
)

type ArticleStore interface {
	List(ctx context.Context, f repository.ArticleFilter) ([]model.Article, error)
	GetByID(ctx context.Context, id uint64) (model.Article, error)
	Create(ctx context.Context, a model.Article) (model.Article, error)
	Update(ctx context.Context, id uint64, patch model.ArticlePatch) error
	SetArchived(ctx context.Context, id uint64, archived bool) error
	Delete(ctx context.Context, id uint64) error
}

// ArticleHandler serves blog articles.  Drafts and archived articles are
// only visible to callers allowed to edit them.
type ArticleHandler struct {
	articles ArticleStore
	log      logging.Logger
}

func NewArticleHandler(articles ArticleStore, log logging.Logger) *ArticleHandler {
	return &ArticleHandler{articles: articles, log: log}
}

// List honours ?published_filter= and ?archived= for signed-in callers.
// Anonymous callers always get published, non-archived articles.
func (h *ArticleHandler) List(c echo.Context) error {
	published, err := parseBool(c, "published_filter")
	if err != nil {
		return respondError(c, h.log, err)
	}
	archived, err := parseBool(c, "archived")
	if err != nil {
		return respondError(c, h.log, err)
	}
	u := middleware.CurrentUser(c)
	if u == nil {
		yes, no := true, false
		published, archived = &yes, &no
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	list, err := h.articles.List(ctx, repository.ArticleFilter{Published: published, Archived: archived})
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := list[:0]
	for _, a := range list {
		if readable(u, a) {
			out = append(out, a)
		}
	}
	return c.JSON(http.StatusOK, out)
}

// Get hides unpublished articles behind a 404 unless the caller may edit them.
func (h *ArticleHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	a, err := h.articles.GetByID(ctx, id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if !readable(middleware.CurrentUser(c), a) {
		return respondError(c, h.log, repository.ErrNotFound)
	}
	return c.JSON(http.StatusOK, a)
}

func readable(u *model.User, a model.Article) bool {
	return a.Visible() || (u != nil && auth.CanMutate(*u, a))
}

func (h *ArticleHandler) Create(c echo.Context) error {
	u, err := actor(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var req model.NewArticle
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, h.log, err)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	a, err := h.articles.Create(ctx, req.Article(u.ID))
	if errors.Is(err, repository.ErrNotFound) {
		return respondError(c, h.log, &model.ValidationError{Fields: map[string]string{"relatedProjectId": "unknown project"}})
	}
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *ArticleHandler) Update(c echo.Context) error {
	return updateOwned(c, h.log, h.articles.GetByID, h.articles.Update)
}

// Archive sets the archived flag from ?archived= (default true).
func (h *ArticleHandler) Archive(c echo.Context) error {
	u, err := actor(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	archived, err := parseBool(c, "archived")
	if err != nil {
		return respondError(c, h.log, err)
	}
	flag := archived == nil || *archived

	ctx, cancel := dbCtx(c)
	defer cancel()

	if _, err := loadAuthorized(ctx, u, id, h.articles.GetByID); err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.articles.SetArchived(ctx, id, flag); err != nil {
		return respondError(c, h.log, err)
	}
	a, err := h.articles.GetByID(ctx, id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *ArticleHandler) Delete(c echo.Context) error {
	return deleteOwned(c, h.log, h.articles.GetByID, h.articles.Delete)
}
