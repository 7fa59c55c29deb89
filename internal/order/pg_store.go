package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore implements OrderStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of OrderStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

const orderColumns = `id, customer_name, phone, coalesce(email, ''), address, city,
       coalesce(notes, ''), total_amount, status, created_at, updated_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.CustomerName, &o.Phone, &o.Email, &o.Address, &o.City,
		&o.Notes, &o.TotalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateOrder persists the order and its items atomically.
func (s *PgStore) CreateOrder(ctx context.Context, order Order, items []OrderItem) (*Order, []OrderItem, error) {
	var created *Order
	createdItems := make([]OrderItem, 0, len(items))

	txErr := s.withTransaction(ctx, func(tx pgx.Tx) error {
		query := `INSERT INTO orders (customer_name, phone, email, address, city, notes, total_amount, status)
		          VALUES ($1, $2, nullif($3, ''), $4, $5, nullif($6, ''), $7, $8)
		          RETURNING ` + orderColumns
		o, err := scanOrder(tx.QueryRow(ctx, query,
			order.CustomerName, order.Phone, order.Email, order.Address,
			order.City, order.Notes, order.TotalAmount, order.Status,
		))
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, item := range items {
			itemQuery := `INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price)
			              VALUES ($1, $2, $3, $4, $5)
			              RETURNING id`
			var itemID uuid.UUID
			err := tx.QueryRow(ctx, itemQuery,
				o.ID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice,
			).Scan(&itemID)
			if err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
			item.ID = itemID
			item.OrderID = o.ID
			createdItems = append(createdItems, item)
		}
		created = o
		return nil
	})
	if txErr != nil {
		return nil, nil, txErr
	}
	return created, createdItems, nil
}

// FindByID retrieves an order and its items.
// Returns ErrOrderNotFound if no order exists with the given ID.
func (s *PgStore) FindByID(ctx context.Context, id uuid.UUID) (*Order, []OrderItem, error) {
	o, err := scanOrder(s.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrOrderNotFound
		}
		return nil, nil, fmt.Errorf("failed to find order by ID: %w", err)
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, order_id, product_id, product_name, quantity, unit_price
		 FROM order_items WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find order items: %w", err)
	}
	defer rows.Close()

	items := make([]OrderItem, 0)
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID,
			&item.ProductName, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read order items: %w", err)
	}
	return o, items, nil
}

// ListAll retrieves every order, newest first.
func (s *PgStore) ListAll(ctx context.Context) ([]Order, error) {
	rows, err := s.db.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order rows: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets the order's fulfillment status.
// Returns ErrOrderNotFound if no order exists with the given ID.
func (s *PgStore) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Order, error) {
	query := `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1 RETURNING ` + orderColumns
	o, err := scanOrder(s.db.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return o, nil
}

func (s *PgStore) withTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return fmt.Errorf("failed to rollback transaction: %w", rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
