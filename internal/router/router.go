package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/portfolio-api/internal/auth"
	"github.com/iliyamo/portfolio-api/internal/handler"
	"github.com/iliyamo/portfolio-api/internal/logging"
	"github.com/iliyamo/portfolio-api/internal/middleware"
)

// Handlers groups every HTTP handler the API exposes.
type Handlers struct {
	Health      *handler.HealthHandler
	Auth        *handler.AuthHandler
	Profile     *handler.ProfileHandler
	Project     *handler.ProjectHandler
	Testimonial *handler.TestimonialHandler
	Article     *handler.ArticleHandler
	Message     *handler.MessageHandler
	Site        *handler.SiteHandler
	AI          *handler.AIHandler
	Media       *handler.MediaHandler
}

// Guards are the per-route middlewares.  Optional attaches the caller when
// present, User demands one, Admin demands an admin and Limit throttles
// abuse-prone public endpoints.
type Guards struct {
	Optional echo.MiddlewareFunc
	User     echo.MiddlewareFunc
	Admin    echo.MiddlewareFunc
	Limit    echo.MiddlewareFunc
}

// NewGuards builds the identity guards over a and uses limit for throttling.
// A nil limit lets every request through.
func NewGuards(a *auth.Authenticator, limit echo.MiddlewareFunc, log logging.Logger) Guards {
	if limit == nil {
		limit = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return Guards{
		Optional: middleware.Identify(a, log),
		User:     middleware.RequireUser(a, log),
		Admin:    middleware.RequireAdmin(a, log),
		Limit:    limit,
	}
}

// Register wires every route onto e.
func Register(e *echo.Echo, h Handlers, g Guards) {
	RegisterRoutes(e, h.Health)
	RegisterAuth(e, h.Auth, g)
	RegisterPortfolio(e, h, g)
	RegisterInbox(e, h.Message, g)
	RegisterSite(e, h.Site, g)
	RegisterTools(e, h, g)
}

// RegisterRoutes exposes the operational endpoints: the health probe and the
// Prometheus scrape target.
func RegisterRoutes(e *echo.Echo, health *handler.HealthHandler) {
	e.GET("/healthz", health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers login, identity and account management.  Login is
// throttled; registering accounts is reserved to admins.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, g Guards) {
	grp := e.Group("/auth")
	grp.POST("/login", a.Login, g.Limit)
	grp.GET("/me", a.Me, g.User)
	grp.PUT("/password", a.ChangePassword, g.User)
	grp.POST("/register", a.Register, g.Admin)
}

// RegisterPortfolio registers the owned resources.  Reads are public (or
// optionally authenticated where visibility depends on the caller); writes
// require a user and the handlers enforce ownership.
func RegisterPortfolio(e *echo.Echo, h Handlers, g Guards) {
	e.GET("/profile", h.Profile.Get, g.Optional)
	e.POST("/profile", h.Profile.Create, g.User)
	e.PATCH("/profile", h.Profile.UpdateOwn, g.User)
	e.PATCH("/profiles/:id", h.Profile.Update, g.User)
	e.DELETE("/profiles/:id", h.Profile.Delete, g.User)

	e.GET("/projects", h.Project.List)
	e.GET("/projects/:id", h.Project.Get)
	e.GET("/projects/slug/:slug", h.Project.GetBySlug)
	e.POST("/projects", h.Project.Create, g.User)
	e.PATCH("/projects/:id", h.Project.Update, g.User)
	e.DELETE("/projects/:id", h.Project.Delete, g.User)

	e.GET("/testimonials", h.Testimonial.List)
	e.GET("/testimonials/me", h.Testimonial.Mine, g.User)
	e.POST("/testimonials", h.Testimonial.Create, g.User)
	e.PATCH("/testimonials/:id", h.Testimonial.Update, g.User)
	e.DELETE("/testimonials/:id", h.Testimonial.Delete, g.User)

	e.GET("/articles", h.Article.List, g.Optional)
	e.GET("/articles/:id", h.Article.Get, g.Optional)
	e.POST("/articles", h.Article.Create, g.User)
	e.PATCH("/articles/:id", h.Article.Update, g.User)
	e.PATCH("/articles/:id/archive", h.Article.Archive, g.User)
	e.DELETE("/articles/:id", h.Article.Delete, g.User)
}

// RegisterInbox registers the contact form and its admin triage endpoints.
func RegisterInbox(e *echo.Echo, m *handler.MessageHandler, g Guards) {
	e.POST("/messages", m.Create, g.Limit)

	e.GET("/messages", m.List, g.Admin)
	e.PATCH("/messages/:id", m.Update, g.Admin)
	e.DELETE("/messages/:id", m.Delete, g.Admin)
}

// RegisterSite registers admin-curated content with public reads.
func RegisterSite(e *echo.Echo, s *handler.SiteHandler, g Guards) {
	e.GET("/experiences", s.ListExperiences)
	e.POST("/experiences", s.CreateExperience, g.Admin)
	e.PATCH("/experiences/:id", s.UpdateExperience, g.Admin)
	e.DELETE("/experiences/:id", s.DeleteExperience, g.Admin)

	e.GET("/ideas", s.ListIdeas)
	e.POST("/ideas", s.CreateIdea, g.Admin)
	e.DELETE("/ideas/:id", s.DeleteIdea, g.Admin)

	e.GET("/content/topics", s.ListTopics)
	e.POST("/content/topics", s.CreateTopic, g.Admin)
	e.PATCH("/content/topics/:id", s.UpdateTopic, g.Admin)
	e.POST("/content/posts", s.CreatePost, g.Admin)
	e.PATCH("/content/posts/:id", s.UpdatePost, g.Admin)
}

// RegisterTools registers the signed-in helpers: draft generation and uploads.
func RegisterTools(e *echo.Echo, h Handlers, g Guards) {
	e.POST("/ai/generate", h.AI.Generate, g.User)
	e.POST("/media/upload", h.Media.Upload, g.User)
}
