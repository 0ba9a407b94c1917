package handlers

import (
	"context"
	"time"

	"stockroom/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// Pinger is satisfied by *database.Store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports whether the backing store answers.
type HealthHandler struct {
	store   Pinger
	timeout time.Duration
	log     *logger.Logger
}

// NewHealthHandler creates a HealthHandler. A non-positive timeout means two seconds.
func NewHealthHandler(store Pinger, timeout time.Duration, logg *logger.Logger) *HealthHandler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &HealthHandler{store: store, timeout: timeout, log: logg}
}

// RegisterRoutes registers GET /health on router.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

// HandleHealth pings the store with a short timeout.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.Warn(ctx, "health.store_unreachable", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "unhealthy",
			"database": "disconnected",
			"error":    err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"status":   "healthy",
		"database": "connected",
	})
}
