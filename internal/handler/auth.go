package handler

import (
	"context"  // store calls take a context
	"errors"   // matching auth sentinel errors
	"net/http" // HTTP status codes
	"strings"  // trimming usernames
	"time"     // token expiry in the login response

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/portfolio-api/internal/auth"    // token issuing and password hashing
	"github.com/iliyamo/portfolio-api/internal/logging" // structured logger
	"github.com/iliyamo/portfolio-api/internal/metrics" // auth outcome counters
	"github.com/iliyamo/portfolio-api/internal/model"   // user payloads and validation
)

// UserStore is the write side of the user table used by the auth endpoints.
type UserStore interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	UpdatePassword(ctx context.Context, id uint64, hash string) error
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	auth       *auth.Authenticator
	users      UserStore
	bcryptCost int
	log        logging.Logger
}

func NewAuthHandler(a *auth.Authenticator, users UserStore, bcryptCost int, log logging.Logger) *AuthHandler {
	return &AuthHandler{auth: a, users: users, bcryptCost: bcryptCost, log: log}
}

// ----- DTOs -----

type loginReq struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type loginResp struct {
	AccessToken string         `json:"accessToken"`
	LegacyToken string         `json:"access_token"`
	TokenType   string         `json:"tokenType"`
	ExpiresAt   time.Time      `json:"expiresAt"`
	User        model.UserView `json:"user"`
}

// Login accepts form-encoded or JSON credentials and returns a bearer token.
// Unknown usernames and wrong passwords produce the same 401.
func (h *AuthHandler) Login(c echo.Context) error {
	// Bind accepts both application/json and form bodies.
	var req loginReq
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	// Login hides whether the username or the password was wrong.
	u, tok, err := h.auth.Login(ctx, req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		metrics.AuthOutcomesTotal.WithLabelValues("login", "invalid_credentials").Inc()
		h.log.Info(ctx, "login rejected", "username", req.Username)
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if err != nil {
		metrics.AuthOutcomesTotal.WithLabelValues("login", "error").Inc()
		return respondError(c, h.log, err)
	}
	metrics.AuthOutcomesTotal.WithLabelValues("login", "ok").Inc()

	// access_token mirrors accessToken for older clients.
	return c.JSON(http.StatusOK, loginResp{
		AccessToken: tok.Token,
		LegacyToken: tok.Token,
		TokenType:   "bearer",
		ExpiresAt:   tok.Exp,
		User:        u.View(),
	})
}

// Me returns the caller.
func (h *AuthHandler) Me(c echo.Context) error {
	u, err := actor(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, u.View())
}

// Register lets an admin create an account with an explicit role.
func (h *AuthHandler) Register(c echo.Context) error {
	var req model.NewUser
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	// Validate also resolves the role, defaulting to admin.
	role, err := req.Validate()
	if err != nil {
		return respondError(c, h.log, err)
	}
	// Hash outside the DB timeout.
	hash, err := auth.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		return respondError(c, h.log, err)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	u, err := h.users.Create(ctx, model.User{
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         role,
	})
	// A duplicate username surfaces as ErrConflict and maps to 409.
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info(ctx, "user registered", "user_id", u.ID, "role", string(u.Role))
	return c.JSON(http.StatusCreated, u.View())
}

// ChangePassword rotates the caller's password after checking the current one.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	u, err := actor(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var req model.PasswordChange
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, h.log, err)
	}
	// A wrong current password is a field error, not a 401.
	if !auth.VerifyPassword(u.PasswordHash, req.CurrentPassword) {
		return respondError(c, h.log, &model.ValidationError{Fields: map[string]string{"currentPassword": "is incorrect"}})
	}
	hash, err := auth.HashPassword(req.NewPassword, h.bcryptCost)
	if err != nil {
		return respondError(c, h.log, err)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info(ctx, "password changed", "user_id", u.ID)
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
