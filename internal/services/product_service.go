package services

import (
	"context"
	"sort"
	"time"

	"stockroom/internal/models"
	"stockroom/internal/repositories"
	pkgerrors "stockroom/pkg/errors"
	"stockroom/pkg/logger"

	"github.com/go-playground/validator/v10"
)

const (
	productNotFound = "product not found"
	// MaxSeedCount bounds a single seed request.
	MaxSeedCount = 1000
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	validate  *validator.Validate
	events    EventPublisher
	log       *logger.Logger
	now       func() time.Time
	generator *ProductGenerator
}

// ProductOption customises a ProductService.
type ProductOption func(*ProductService)

// WithClock overrides the time source used for created_at/updated_at.
func WithClock(now func() time.Time) ProductOption {
	return func(s *ProductService) { s.now = now }
}

// WithGenerator overrides the seed generator.
func WithGenerator(g *ProductGenerator) ProductOption {
	return func(s *ProductService) { s.generator = g }
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, events EventPublisher, logg *logger.Logger, opts ...ProductOption) *ProductService {
	if events == nil {
		events = NoopPublisher()
	}
	if logg == nil {
		logg = logger.Nop()
	}
	s := &ProductService{
		repo:     repo,
		validate: newValidator(),
		events:   events,
		log:      logg,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.generator == nil {
		s.generator = NewProductGenerator(nil)
	}
	return s
}

// List returns every product.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, storeError(err, productNotFound, "failed to list products")
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// Get returns a single product.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, productNotFound, "failed to get product")
	}
	return product, nil
}

// Create validates in, stamps both timestamps and stores the product.
func (s *ProductService) Create(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	product := in.Product(s.now())
	if err := s.repo.Create(ctx, &product); err != nil {
		return nil, storeError(err, productNotFound, "failed to create product")
	}

	s.publishChange(ctx, EventProductCreated, &product)
	return &product, nil
}

// Update merges upd into the stored product and refreshes updated_at.
func (s *ProductService) Update(ctx context.Context, id string, upd models.ProductUpdate) (*models.Product, error) {
	if err := s.validate.Struct(upd); err != nil {
		return nil, validationError(err)
	}

	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	upd.Apply(product, s.now())
	if err := s.validate.Struct(product); err != nil {
		return nil, validationError(err)
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, storeError(err, productNotFound, "failed to update product")
	}

	s.publishChange(ctx, EventProductUpdated, product)
	return product, nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, productNotFound, "failed to delete product")
	}
	publish(ctx, s.events, s.log, EventProductDeleted, map[string]string{"id": id})
	return nil
}

// Stats aggregates the current product collection. It is recomputed from a
// fresh listing on every call.
func (s *ProductService) Stats(ctx context.Context) (*models.InventoryStats, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, storeError(err, productNotFound, "failed to compute inventory stats")
	}
	return ComputeStats(products), nil
}

// ComputeStats aggregates products. Categories are distinct and sorted.
func ComputeStats(products []models.Product) *models.InventoryStats {
	stats := &models.InventoryStats{
		TotalProducts: len(products),
		Categories:    []string{},
	}
	seen := make(map[string]struct{})
	for _, p := range products {
		stats.TotalValue += p.Price * float64(p.Stock)
		if p.IsLowStock() {
			stats.LowStockCount++
		}
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			stats.Categories = append(stats.Categories, p.Category)
		}
	}
	sort.Strings(stats.Categories)
	return stats
}

// Seed replaces the whole collection with n generated products.
func (s *ProductService) Seed(ctx context.Context, n int) (int, error) {
	if n <= 0 || n > MaxSeedCount {
		return 0, pkgerrors.Newf(pkgerrors.CodeInvalidInput, "count must be between 1 and %d", MaxSeedCount)
	}

	products := s.generator.Generate(n, s.now())
	for i := range products {
		if err := s.validate.Struct(products[i]); err != nil {
			return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generated product failed validation")
		}
	}

	if err := s.repo.ReplaceAll(ctx, products); err != nil {
		return 0, storeError(err, productNotFound, "failed to seed products")
	}

	publish(ctx, s.events, s.log, EventInventorySeeded, map[string]int{"count": len(products)})
	s.log.Info(s.log.WithField(ctx, "count", len(products)), "inventory.seeded")
	return len(products), nil
}

func (s *ProductService) publishChange(ctx context.Context, eventType string, product *models.Product) {
	publish(ctx, s.events, s.log, eventType, product)
	if product.IsLowStock() {
		publish(ctx, s.events, s.log, EventProductLowStock, map[string]any{
			"id":        product.ID,
			"name":      product.Name,
			"stock":     product.Stock,
			"min_stock": product.MinStock,
		})
	}
}
