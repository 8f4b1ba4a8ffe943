package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio-api/internal/logging"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler answers load balancer probes.
type HealthHandler struct {
	db  Pinger
	log logging.Logger
}

func NewHealthHandler(db Pinger, log logging.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

// Health returns plain "ok" while the database answers and 503 otherwise.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.log.Warn(ctx, "health check failed", "err", err)
		return c.String(http.StatusServiceUnavailable, "database unavailable")
	}
	return c.String(http.StatusOK, "ok")
}
