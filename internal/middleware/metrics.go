package middleware

import (
	"time"

	"stockroom/pkg/metrics"

	"github.com/gofiber/fiber/v2"
)

// Metrics records a request counter and latency per matched route.
func Metrics(m *metrics.HTTPMetrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := resolve(c, c.Next())

		status := c.Response().StatusCode()
		m.ObserveRequest(c.Method(), routeLabel(c, status), status, time.Since(start))
		return err
	}
}

// Unmatched paths leave the app-level middleware route ("/") as the last
// match; they are reported without a route.
func routeLabel(c *fiber.Ctx, status int) string {
	route := c.Route()
	if route == nil || (status == fiber.StatusNotFound && route.Path == "/") {
		return ""
	}
	return route.Path
}
