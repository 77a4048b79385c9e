package middleware

import (
	"strconv"
	"time"

	"storefront/internal/apperror"
	"storefront/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

// Prometheus records the count and duration of every request, labelled by
// route pattern rather than raw path.
func Prometheus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The app error handler has not run yet; take the status it will use.
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = apperror.StatusCode(err)
			}
		}
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		labels := []string{c.Method(), path, strconv.Itoa(status)}
		metrics.HTTPRequestsTotal.WithLabelValues(labels...).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		return err
	}
}
