package middleware // middleware holds the shared request pipeline: identity, throttling, logging and metrics

// identity.go resolves the caller behind the Authorization header and stores
// it on the echo context.  Three strengths are offered: Identify never
// rejects, RequireUser rejects anonymous callers with 401 and RequireAdmin
// additionally rejects non-admins with 403.

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio-api/internal/auth"
	"github.com/iliyamo/portfolio-api/internal/logging"
	"github.com/iliyamo/portfolio-api/internal/metrics"
	"github.com/iliyamo/portfolio-api/internal/model"
)

const userKey = "auth.user"

// CurrentUser returns the user resolved for this request, or nil.
func CurrentUser(c echo.Context) *model.User {
	u, _ := c.Get(userKey).(*model.User)
	return u
}

// SetUser stores u on the context.  It is exported for handler tests.
func SetUser(c echo.Context, u *model.User) { c.Set(userKey, u) }

// userID returns the caller's id for rate-limit keys and request logs.
func userID(c echo.Context) string {
	if u := CurrentUser(c); u != nil {
		return strconv.FormatUint(u.ID, 10)
	}
	return "anon"
}

// Identify attaches the caller when a valid token is present and lets
// anonymous requests through untouched.
func Identify(a *auth.Authenticator, log logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Only a failed user lookup is an error here.  Missing, expired
			// or forged tokens all come back as a nil user.
			u, err := a.ResolveOptional(c.Request())
			if err != nil {
				return internalError(c, log, err)
			}
			if u == nil {
				metrics.AuthOutcomesTotal.WithLabelValues("optional", "anonymous").Inc()
				// A header that did not resolve is worth a debug line; the
				// request itself still proceeds as anonymous.
				if c.Request().Header.Get(echo.HeaderAuthorization) != "" {
					log.Debug(c.Request().Context(), "ignoring unusable bearer token", "path", c.Path())
				}
				return next(c)
			}
			metrics.AuthOutcomesTotal.WithLabelValues("optional", "ok").Inc()
			// Store the resolved user so handlers can read it via CurrentUser.
			SetUser(c, u)
			return next(c)
		}
	}
}

// RequireUser rejects requests without a usable identity.
func RequireUser(a *auth.Authenticator, log logging.Logger) echo.MiddlewareFunc {
	return guard("required", a.ResolveRequired, log)
}

// RequireAdmin rejects anonymous callers with 401 and non-admins with 403.
func RequireAdmin(a *auth.Authenticator, log logging.Logger) echo.MiddlewareFunc {
	return guard("admin", a.ResolveAdmin, log)
}

func guard(stage string, resolve func(*http.Request) (model.User, error), log logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// resolve re-reads the user from the database, so the role used
			// below is the current one, not the one at login time.
			u, err := resolve(c.Request())
			switch {
			// No usable token: 401 with a challenge header.
			case errors.Is(err, auth.ErrUnauthenticated):
				metrics.AuthOutcomesTotal.WithLabelValues(stage, "unauthenticated").Inc()
				log.Debug(c.Request().Context(), "rejecting unauthenticated request",
					"path", c.Path(), "has_header", c.Request().Header.Get(echo.HeaderAuthorization) != "")
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			// Known user without the admin role: 403.
			case errors.Is(err, auth.ErrForbidden):
				metrics.AuthOutcomesTotal.WithLabelValues(stage, "forbidden").Inc()
				log.Debug(c.Request().Context(), "rejecting non-admin request", "path", c.Path())
				return c.JSON(http.StatusForbidden, echo.Map{"error": "admin role required"})
			case err != nil:
				return internalError(c, log, err)
			}
			metrics.AuthOutcomesTotal.WithLabelValues(stage, "ok").Inc()
			SetUser(c, &u)
			return next(c)
		}
	}
}

func internalError(c echo.Context, log logging.Logger, err error) error {
	metrics.AuthOutcomesTotal.WithLabelValues("resolve", "error").Inc()
	log.Error(c.Request().Context(), "identity lookup failed", "err", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
