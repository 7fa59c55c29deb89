// Package catalog provides the product catalog: the product model, the
// in-memory filter/sort engine the storefront listing runs on, and the
// PostgreSQL-backed store and service for product management.
package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Category is the fragrance line a product belongs to.
type Category string

const (
	CategoryHomme   Category = "homme"
	CategoryFemme   Category = "femme"
	CategoryUnisexe Category = "unisexe"

	// CategoryAll is the filter wildcard matching every category.
	// It is never stored on a product.
	CategoryAll Category = "tous"
)

// Valid reports whether c is a storable product category.
func (c Category) Valid() bool {
	switch c {
	case CategoryHomme, CategoryFemme, CategoryUnisexe:
		return true
	}
	return false
}

// FallbackBrand labels products without a brand. It is a display value
// only: it never appears in the distinct-brand facet list.
const FallbackBrand = "Autre"

// Product is a catalog entry. Price is in currency minor units.
type Product struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand"`
	Price         int64     `json:"price"`
	StockQuantity int32     `json:"stock_quantity"`
	Category      Category  `json:"category"`
	Description   string    `json:"description,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	Rating        float64   `json:"rating"`
	ReviewCount   int32     `json:"review_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BrandLabel returns the brand, or FallbackBrand when none is set.
func (p Product) BrandLabel() string {
	if p.Brand == "" {
		return FallbackBrand
	}
	return p.Brand
}
