package server

import (
	"errors"
	"strings"

	"stockroom/internal/config"
	"stockroom/internal/handlers"
	"stockroom/internal/middleware"
	"stockroom/internal/services"
	pkgerrors "stockroom/pkg/errors"
	"stockroom/pkg/logger"
	"stockroom/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps carries everything New wires into the app. Users or Products may be
// nil when the configured service kind does not serve them.
type Deps struct {
	Users    *services.UserService
	Products *services.ProductService
	Store    handlers.Pinger
	Log      *logger.Logger
	// Registry receives the HTTP metrics. Nil disables /metrics.
	Registry *prometheus.Registry
}

// New builds the fiber app for cfg.
func New(cfg *config.Config, deps Deps) *fiber.App {
	logg := deps.Log
	if logg == nil {
		logg = logger.Nop()
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.ServiceName,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logg),
	})

	var httpMetrics *metrics.HTTPMetrics
	if cfg.MetricsEnabled && deps.Registry != nil {
		httpMetrics = metrics.NewHTTPMetrics(deps.Registry)
	}

	app.Use(requestid.New())
	app.Use(middleware.Logging(logg))
	app.Use(middleware.Metrics(httpMetrics))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORSOrigins, ","),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	handlers.NewHealthHandler(deps.Store, cfg.HealthTimeout, logg).RegisterRoutes(app)
	if httpMetrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	if cfg.ServesUsers() && deps.Users != nil {
		handlers.NewUserHandler(deps.Users, logg).RegisterRoutes(api)
	}
	if cfg.ServesProducts() && deps.Products != nil {
		handlers.NewProductHandler(deps.Products, logg, httpMetrics, cfg.SeedCount).RegisterRoutes(api)
	}

	return app
}

// errorHandler renders errors that escaped the handlers (unknown routes,
// recovered panics) as {detail}.
func errorHandler(logg *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			detail := fe.Message
			if fe.Code == fiber.StatusNotFound {
				detail = "Not Found"
			}
			return c.Status(fe.Code).JSON(fiber.Map{"detail": detail})
		}

		logg.Error(c.UserContext(), "request.unhandled_error", err)
		meta := pkgerrors.MetadataFor(pkgerrors.CodeOf(err))
		detail := meta.PublicMessage
		if typed := pkgerrors.As(err); typed != nil {
			detail = typed.Public()
		}
		return c.Status(meta.HTTPStatus).JSON(fiber.Map{"detail": detail})
	}
}
