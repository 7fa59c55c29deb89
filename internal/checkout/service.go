// Package checkout turns a session's cart into a placed order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/parfumerie-dz/storefront/internal/cart"
	"github.com/parfumerie-dz/storefront/internal/order"
	"github.com/parfumerie-dz/storefront/internal/pricing"
)

// ErrEmptyCart is returned when checkout is attempted on an empty cart.
var ErrEmptyCart = errors.New("cart is empty")

// CheckoutService submits the session's cart as an order.
type CheckoutService interface {
	// Checkout snapshots the cart, prices it, submits the order and clears
	// the cart. The cart is cleared only after the order is acknowledged;
	// on failure it is left untouched so the customer can retry.
	Checkout(ctx context.Context, sessionID string, customer CustomerDto) (*ResultDto, error)
}

// Service implements CheckoutService over the cart and order services.
type Service struct {
	carts  cart.CartService
	orders order.OrderService
	logger *slog.Logger
}

// NewService creates a checkout service.
func NewService(carts cart.CartService, orders order.OrderService, logger *slog.Logger) *Service {
	return &Service{
		carts:  carts,
		orders: orders,
		logger: logger.With("component", "checkout_service"),
	}
}

// CustomerDto is the delivery form submitted at checkout.
type CustomerDto struct {
	Name    string `json:"name"    validate:"required,max=200"`
	Phone   string `json:"phone"   validate:"required,max=30"`
	Email   string `json:"email"   validate:"omitempty,email"`
	Address string `json:"address" validate:"required,max=500"`
	City    string `json:"city"    validate:"required,max=100"`
	Notes   string `json:"notes"   validate:"max=1000"`
}

// ResultDto reports the placed order and its price breakdown.
type ResultDto struct {
	OrderID  uuid.UUID `json:"order_id"`
	Subtotal int64     `json:"subtotal"`
	Shipping int64     `json:"shipping"`
	Total    int64     `json:"total"`
}

// Checkout submits the session's cart as an order.
// Returns ErrEmptyCart when there is nothing to order.
func (s *Service) Checkout(ctx context.Context, sessionID string, customer CustomerDto) (*ResultDto, error) {
	snapshot := s.carts.Get(sessionID)
	if len(snapshot.Items) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := snapshot.Subtotal()
	total := pricing.Total(subtotal)

	items := make([]order.OrderItemCreateDto, 0, len(snapshot.Items))
	for _, line := range snapshot.Items {
		items = append(items, order.OrderItemCreateDto{
			ProductID:   line.ID,
			ProductName: line.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.Price,
		})
	}

	created, err := s.orders.Create(ctx, order.OrderCreateDto{
		CustomerName: customer.Name,
		Phone:        customer.Phone,
		Email:        customer.Email,
		Address:      customer.Address,
		City:         customer.City,
		Notes:        customer.Notes,
		TotalAmount:  total,
		Items:        items,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit order: %w", err)
	}

	// The order is placed; a failed clear must not fail the checkout.
	if err := s.carts.Clear(sessionID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to clear cart after checkout", "session_id", sessionID, "error", err)
	}

	return &ResultDto{
		OrderID:  created.ID,
		Subtotal: subtotal,
		Shipping: pricing.Shipping(subtotal),
		Total:    total,
	}, nil
}
