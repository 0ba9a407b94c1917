package models

import "time"

// Product represents an inventory item.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null" validate:"required,min=1,max=100"`
	Description string    `json:"description" gorm:"type:varchar(500)" validate:"max=500"`
	Category    string    `json:"category" gorm:"type:varchar(50);index;not null" validate:"required,min=1,max=50"`
	Price       float64   `json:"price" gorm:"not null" validate:"gt=0"`
	Stock       int       `json:"stock" gorm:"not null" validate:"gte=0"`
	MinStock    int       `json:"min_stock" gorm:"not null" validate:"gte=0"`
	Supplier    string    `json:"supplier" gorm:"type:varchar(100);not null" validate:"required,min=1,max=100"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}

// IsLowStock reports whether stock has reached the reorder threshold.
// The threshold is inclusive.
func (p Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

// ProductInput is the body accepted when creating a product. Numeric fields
// are pointers so that a missing value can be told apart from zero.
type ProductInput struct {
	Name        string   `json:"name" validate:"required,min=1,max=100"`
	Description string   `json:"description" validate:"max=500"`
	Category    string   `json:"category" validate:"required,min=1,max=50"`
	Price       *float64 `json:"price" validate:"required,gt=0"`
	Stock       *int     `json:"stock" validate:"required,gte=0"`
	MinStock    *int     `json:"min_stock" validate:"required,gte=0"`
	Supplier    string   `json:"supplier" validate:"required,min=1,max=100"`
}

// Product builds the record to store, stamped with now.
func (in ProductInput) Product(now time.Time) Product {
	p := Product{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Supplier:    in.Supplier,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.MinStock != nil {
		p.MinStock = *in.MinStock
	}
	return p
}

// ProductUpdate carries a partial update; nil fields are left untouched.
type ProductUpdate struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Category    *string  `json:"category" validate:"omitempty,min=1,max=50"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	MinStock    *int     `json:"min_stock" validate:"omitempty,gte=0"`
	Supplier    *string  `json:"supplier" validate:"omitempty,min=1,max=100"`
}

// Apply merges the present fields into p and stamps UpdatedAt.
func (u ProductUpdate) Apply(p *Product, now time.Time) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
	if u.MinStock != nil {
		p.MinStock = *u.MinStock
	}
	if u.Supplier != nil {
		p.Supplier = *u.Supplier
	}
	p.UpdatedAt = now
}

// InventoryStats aggregates the product collection.
type InventoryStats struct {
	TotalProducts int      `json:"totalProducts"`
	TotalValue    float64  `json:"totalValue"`
	LowStockCount int      `json:"lowStockCount"`
	Categories    []string `json:"categories"`
}
