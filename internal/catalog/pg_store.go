package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore implements ProductStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

const productColumns = `id, name, coalesce(brand, ''), price, stock_quantity, category,
       coalesce(description, ''), coalesce(image_url, ''), rating, review_count,
       created_at, updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Brand, &p.Price, &p.StockQuantity, &p.Category,
		&p.Description, &p.ImageURL, &p.Rating, &p.ReviewCount,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListAll retrieves every product ordered by creation time, newest first.
// It returns a slice of products, which may be empty if no products exist.
func (s *PgStore) ListAll(ctx context.Context) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product rows: %w", err)
	}
	return products, nil
}

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *PgStore) FindByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return p, nil
}

// Create adds a new product to the catalog.
// Returns an error if the product cannot be created.
func (s *PgStore) Create(ctx context.Context, p Product) (*Product, error) {
	query := `INSERT INTO products (name, brand, price, stock_quantity, category,
	                                description, image_url, rating, review_count)
	          VALUES ($1, nullif($2, ''), $3, $4, $5, nullif($6, ''), nullif($7, ''), $8, $9)
	          RETURNING ` + productColumns
	created, err := scanProduct(s.db.QueryRow(ctx, query,
		p.Name, p.Brand, p.Price, p.StockQuantity, p.Category,
		p.Description, p.ImageURL, p.Rating, p.ReviewCount,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return created, nil
}

// Update modifies an existing product's details.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *PgStore) Update(ctx context.Context, p Product) (*Product, error) {
	query := `UPDATE products
	          SET name = $2, brand = nullif($3, ''), price = $4, stock_quantity = $5,
	              category = $6, description = nullif($7, ''), image_url = nullif($8, ''),
	              rating = $9, review_count = $10, updated_at = now()
	          WHERE id = $1
	          RETURNING ` + productColumns
	updated, err := scanProduct(s.db.QueryRow(ctx, query,
		p.ID, p.Name, p.Brand, p.Price, p.StockQuantity, p.Category,
		p.Description, p.ImageURL, p.Rating, p.ReviewCount,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return updated, nil
}

// DeleteByID removes a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *PgStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}
