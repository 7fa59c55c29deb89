package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when no order exists with the given ID.
var ErrOrderNotFound = errors.New("order not found")

// ErrInvalidStatus is returned for a status value outside the known set.
var ErrInvalidStatus = errors.New("invalid order status")

// OrderStore defines the persistence operations for orders.
type OrderStore interface {
	// CreateOrder persists the order together with its items in a single
	// transaction; either everything is stored or nothing is.
	CreateOrder(ctx context.Context, order Order, items []OrderItem) (*Order, []OrderItem, error)

	// FindByID retrieves an order and its items.
	// Returns ErrOrderNotFound if no order exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Order, []OrderItem, error)

	// ListAll returns every order, newest first.
	ListAll(ctx context.Context) ([]Order, error)

	// UpdateStatus sets the order's fulfillment status.
	// Returns ErrOrderNotFound if no order exists with the given ID.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Order, error)
}
