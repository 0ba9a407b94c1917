package repositories

import (
	"context"

	"stockroom/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const seedBatchSize = 100

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, translateGORMError(err, "get all products")
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if !isUUID(id) {
		return nil, ErrNotFound
	}
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, translateGORMError(err, "get product")
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	product.ID = uuid.NewString()
	return translateGORMError(r.db.WithContext(ctx).Create(product).Error, "create product")
}

// Update writes every mutable column of product. Save is avoided because it
// upserts when the row has gone away.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	if !isUUID(product.ID) {
		return ErrNotFound
	}
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":        product.Name,
			"description": product.Description,
			"category":    product.Category,
			"price":       product.Price,
			"stock":       product.Stock,
			"min_stock":   product.MinStock,
			"supplier":    product.Supplier,
			"updated_at":  product.UpdatedAt,
		})
	if res.Error != nil {
		return translateGORMError(res.Error, "update product")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return ErrNotFound
	}
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return translateGORMError(res.Error, "delete product")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceAll empties the table and bulk inserts products in one transaction.
func (r *GORMProductRepository) ReplaceAll(ctx context.Context, products []models.Product) error {
	for i := range products {
		products[i].ID = uuid.NewString()
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		if len(products) == 0 {
			return nil
		}
		return tx.CreateInBatches(products, seedBatchSize).Error
	})
	return translateGORMError(err, "replace products")
}
