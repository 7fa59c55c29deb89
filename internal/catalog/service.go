package catalog

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
)

// ProductService defines the methods for browsing and managing the catalog.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// List returns the products matching the filter spec, in the spec's sort order.
	// Returns an empty slice when nothing matches.
	List(ctx context.Context, spec FilterSpec) ([]ProductDto, error)

	// Brands returns the distinct brand facet values across the catalog.
	Brands(ctx context.Context) ([]string, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*ProductDto, error)

	// Create adds a new product to the catalog.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// Update modifies an existing product's details.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id uuid.UUID, product ProductUpdateDto) (*ProductDto, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// Service implements ProductService and provides methods to manage the catalog.
type Service struct {
	repository ProductStore
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo ProductStore) *Service {
	return &Service{
		repository: repo,
	}
}

// ProductCreateDto represents the data transfer object for creating a new product.
type ProductCreateDto struct {
	Name          string `json:"name"           validate:"required,max=200"`
	Brand         string `json:"brand"          validate:"max=100"`
	Price         int64  `json:"price"          validate:"required,min=0"`
	StockQuantity int32  `json:"stock_quantity" validate:"min=0"`
	Category      string `json:"category"       validate:"required,oneof=homme femme unisexe"`
	Description   string `json:"description"    validate:"max=2000"`
	ImageURL      string `json:"image_url"      validate:"omitempty,url"`
}

// ProductUpdateDto represents the data transfer object for updating a product.
type ProductUpdateDto struct {
	Name          string `json:"name"           validate:"required,max=200"`
	Brand         string `json:"brand"          validate:"max=100"`
	Price         int64  `json:"price"          validate:"required,min=0"`
	StockQuantity int32  `json:"stock_quantity" validate:"min=0"`
	Category      string `json:"category"       validate:"required,oneof=homme femme unisexe"`
	Description   string `json:"description"    validate:"max=2000"`
	ImageURL      string `json:"image_url"      validate:"omitempty,url"`
}

// ProductDto represents the data transfer object for a product. Brand is
// always populated, falling back to FallbackBrand for unbranded products.
type ProductDto struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand"`
	Price         int64     `json:"price"`
	StockQuantity int32     `json:"stock_quantity"`
	Category      string    `json:"category"`
	Description   string    `json:"description,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	Rating        float64   `json:"rating"`
	ReviewCount   int32     `json:"review_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// List fetches the catalog and applies the filter spec in memory.
// Returns an empty slice if nothing matches or error if the retrieval fails.
func (s *Service) List(ctx context.Context, spec FilterSpec) ([]ProductDto, error) {
	products, err := s.repository.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	filtered := Apply(products, spec)

	productDTOs := make([]ProductDto, len(filtered))
	for i, item := range filtered {
		productDTOs[i] = *toDto(&item)
	}
	return productDTOs, nil
}

// Brands returns the distinct brand facet values across the catalog.
func (s *Service) Brands(ctx context.Context) ([]string, error) {
	products, err := s.repository.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return DistinctBrands(products), nil
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}
	return toDto(product), nil
}

// Create creates a new product and returns it as a ProductDto.
// Display rating and review count are assigned deterministically from the
// product name, so repeated imports of the same catalog stay stable.
func (s *Service) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	rating, reviews := displayRating(product.Name)
	created, err := s.repository.Create(ctx, Product{
		Name:          product.Name,
		Brand:         product.Brand,
		Price:         product.Price,
		StockQuantity: product.StockQuantity,
		Category:      Category(product.Category),
		Description:   product.Description,
		ImageURL:      product.ImageURL,
		Rating:        rating,
		ReviewCount:   reviews,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return toDto(created), nil
}

// Update modifies an existing product's details and returns the updated product.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) Update(ctx context.Context, id uuid.UUID, product ProductUpdateDto) (*ProductDto, error) {
	rating, reviews := displayRating(product.Name)
	updated, err := s.repository.Update(ctx, Product{
		ID:            id,
		Name:          product.Name,
		Brand:         product.Brand,
		Price:         product.Price,
		StockQuantity: product.StockQuantity,
		Category:      Category(product.Category),
		Description:   product.Description,
		ImageURL:      product.ImageURL,
		Rating:        rating,
		ReviewCount:   reviews,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", id, err)
	}
	return toDto(updated), nil
}

// DeleteByID deletes a product by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return s.repository.DeleteByID(ctx, id)
}

// displayRating derives a stable rating in [3.5, 4.9] and review count in
// [10, 200) from the product name.
func displayRating(name string) (float64, int32) {
	h := fnv.New32a()
	h.Write([]byte(name))
	sum := h.Sum32()
	rating := 3.5 + float64(sum%15)/10
	reviews := int32(10 + sum%190)
	return rating, reviews
}

// toDto converts a Product to a ProductDto.
func toDto(product *Product) *ProductDto {
	return &ProductDto{
		ID:            product.ID.String(),
		Name:          product.Name,
		Brand:         product.BrandLabel(),
		Price:         product.Price,
		StockQuantity: product.StockQuantity,
		Category:      string(product.Category),
		Description:   product.Description,
		ImageURL:      product.ImageURL,
		Rating:        product.Rating,
		ReviewCount:   product.ReviewCount,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}
