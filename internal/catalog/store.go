package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when no product exists with the given ID.
var ErrProductNotFound = errors.New("product not found")

// ProductStore defines the persistence operations for products.
type ProductStore interface {
	// ListAll returns every product, newest first.
	// Returns an empty slice if no products exist.
	ListAll(ctx context.Context) ([]Product, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// Create adds a new product and returns it with its generated fields.
	Create(ctx context.Context, p Product) (*Product, error)

	// Update replaces an existing product's details.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, p Product) (*Product, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
