// Package order provides order intake and back-office management.
package order

import (
	"time"

	"github.com/google/uuid"
)

// Status is the fulfillment state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known order status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order is a customer order. TotalAmount includes shipping and is captured
// at submission time, as are the per-item unit prices: later catalog
// changes never reprice a placed order.
type Order struct {
	ID           uuid.UUID
	CustomerName string
	Phone        string
	Email        string
	Address      string
	City         string
	Notes        string
	TotalAmount  int64
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OrderItem is one line of a placed order. ProductName and UnitPrice are
// snapshots so the order stays readable after catalog edits or deletions.
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int32
	UnitPrice   int64
}
