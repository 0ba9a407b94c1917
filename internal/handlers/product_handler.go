package handlers

import (
	"fmt"
	"strconv"

	"stockroom/internal/models"
	"stockroom/internal/services"
	pkgerrors "stockroom/pkg/errors"
	"stockroom/pkg/logger"
	"stockroom/pkg/metrics"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service     *services.ProductService
	log         *logger.Logger
	metrics     *metrics.HTTPMetrics
	defaultSeed int
}

// NewProductHandler creates a new ProductHandler. defaultSeed is used when
// POST /seed carries no count.
func NewProductHandler(service *services.ProductService, logg *logger.Logger, m *metrics.HTTPMetrics, defaultSeed int) *ProductHandler {
	if logg == nil {
		logg = logger.Nop()
	}
	if defaultSeed <= 0 {
		defaultSeed = 100
	}
	return &ProductHandler{
		service:     service,
		log:         logg,
		metrics:     m,
		defaultSeed: defaultSeed,
	}
}

// RegisterRoutes registers the product routes on router.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/stats/inventory", h.HandleInventoryStats)
	productRoutes.Post("/seed", h.HandleSeed)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts lists every product.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(products)
}

// HandleGetProduct retrieves a single product by id.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var in models.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, h.log, badBody(err))
	}

	product, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct applies a partial update.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var upd models.ProductUpdate
	if err := c.BodyParser(&upd); err != nil {
		return writeError(c, h.log, badBody(err))
	}

	product, err := h.service.Update(c.UserContext(), c.Params("id"), upd)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// HandleInventoryStats returns aggregate inventory figures.
func (h *ProductHandler) HandleInventoryStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(stats)
}

// HandleSeed replaces the collection with generated products.
func (h *ProductHandler) HandleSeed(c *fiber.Ctx) error {
	count := h.defaultSeed
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return writeError(c, h.log, pkgerrors.Newf(pkgerrors.CodeInvalidInput, "count must be an integer, got %q", raw))
		}
		count = n
	}

	seeded, err := h.service.Seed(c.UserContext(), count)
	if err != nil {
		return writeError(c, h.log, err)
	}
	h.metrics.AddSeeded(seeded)

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Successfully seeded %d products", seeded),
		"count":   seeded,
	})
}
