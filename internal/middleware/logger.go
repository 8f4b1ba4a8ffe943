package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/portfolio-api/internal/logging"
)

// RequestLogger logs one line per request.  The values are read after the
// handler chain returns, so a user attached by route-level identity
// middleware is included.
func RequestLogger(log logging.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"user_id", userID(c),
			}
			ctx := c.Request().Context()
			switch {
			case v.Error != nil:
				log.Error(ctx, "request", append(args, "err", v.Error.Error())...)
			case v.Status >= 500:
				log.Error(ctx, "request", args...)
			default:
				log.Info(ctx, "request", args...)
			}
			return nil
		},
	})
}
