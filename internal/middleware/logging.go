package middleware

import (
	"time"

	"stockroom/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Logging attaches request id, method and path to the request context and
// logs request.complete once the response status is known. It must run after
// the requestid middleware.
func Logging(logg *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		if logg != nil {
			reqID, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
			ctx = logg.WithRequest(ctx, reqID, c.Method(), c.Path())
			c.SetUserContext(ctx)
		}

		start := time.Now()
		err := resolve(c, c.Next())

		if logg != nil {
			ctx = logg.WithFields(ctx, map[string]any{
				"status":      c.Response().StatusCode(),
				"duration_ms": time.Since(start).Milliseconds(),
			})
			logg.Info(ctx, "request.complete")
		}
		return err
	}
}

// resolve runs the app error handler for err so that the status written to
// the response is final before it gets observed.
func resolve(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}
	return c.App().ErrorHandler(c, err)
}
