package echo

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hostelhub/roster-import/internal/metrics"
)

// RequestDuration records handler latency by route pattern.
func RequestDuration() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			metrics.APIRequestDuration.WithLabelValues(
				path,
				c.Request().Method,
				strconv.Itoa(c.Response().Status),
			).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
