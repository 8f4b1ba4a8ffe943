package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio-api/internal/metrics"
)

// Metrics records request count and latency per route template.  Unmatched
// routes are folded into one label value to keep cardinality bounded.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			metrics.RequestsTotal.WithLabelValues(method, route, metrics.StatusClass(status)).Inc()
			metrics.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
