package order

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/parfumerie-dz/storefront/pkg/messaging"
	"github.com/parfumerie-dz/storefront/pkg/messaging/events"
)

// OrderService defines the methods for placing and managing orders.
type OrderService interface {
	// Create persists a new order in the pending status and returns it.
	Create(ctx context.Context, order OrderCreateDto) (*OrderDto, error)

	// FindByID retrieves a single order with its items.
	// Returns ErrOrderNotFound if no order exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*OrderDto, error)

	// ListAll returns every order, newest first, without items.
	ListAll(ctx context.Context) ([]OrderDto, error)

	// UpdateStatus moves an order to a new fulfillment status.
	// Returns ErrInvalidStatus for an unknown status and ErrOrderNotFound
	// if no order exists with the given ID.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*OrderDto, error)
}

// Service implements OrderService and provides methods to manage orders.
type Service struct {
	orderStore OrderStore
	publisher  messaging.Publisher
	logger     *slog.Logger
}

// NewService creates a new instance of OrderService with the provided store and publisher.
func NewService(orderStore OrderStore, publisher messaging.Publisher, logger *slog.Logger) *Service {
	return &Service{
		orderStore: orderStore,
		publisher:  publisher,
		logger:     logger.With("component", "order_service"),
	}
}

// OrderCreateDto represents the data transfer object for placing a new order.
type OrderCreateDto struct {
	CustomerName string               `json:"customer_name" validate:"required,max=200"`
	Phone        string               `json:"phone"         validate:"required,max=30"`
	Email        string               `json:"email"         validate:"omitempty,email"`
	Address      string               `json:"address"       validate:"required,max=500"`
	City         string               `json:"city"          validate:"required,max=100"`
	Notes        string               `json:"notes"         validate:"max=1000"`
	TotalAmount  int64                `json:"total_amount"  validate:"min=0"`
	Items        []OrderItemCreateDto `json:"items"         validate:"required,gt=0,dive"`
}

// OrderItemCreateDto represents one line of a new order. UnitPrice is the
// captured price at order time, never re-derived from the catalog.
type OrderItemCreateDto struct {
	ProductID   uuid.UUID `json:"product_id"   validate:"required"`
	ProductName string    `json:"product_name" validate:"required,max=200"`
	Quantity    int32     `json:"quantity"     validate:"required,min=1"`
	UnitPrice   int64     `json:"unit_price"   validate:"min=0"`
}

// OrderDto represents the data transfer object for an order.
type OrderDto struct {
	ID           uuid.UUID      `json:"id"`
	CustomerName string         `json:"customer_name"`
	Phone        string         `json:"phone"`
	Email        string         `json:"email,omitempty"`
	Address      string         `json:"address"`
	City         string         `json:"city"`
	Notes        string         `json:"notes,omitempty"`
	TotalAmount  int64          `json:"total_amount"`
	Status       string         `json:"status"`
	CreatedAt    string         `json:"created_at"`
	Items        []OrderItemDto `json:"items,omitempty"`
}

// OrderItemDto represents one line of a placed order.
type OrderItemDto struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int32     `json:"quantity"`
	UnitPrice   int64     `json:"unit_price"`
}

// Create persists the order with its items in one transaction and
// publishes an OrderCreatedEvent. A publish failure is logged but does
// not fail the order: intake must not depend on the broker being up.
func (s *Service) Create(ctx context.Context, order OrderCreateDto) (*OrderDto, error) {
	items := make([]OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	created, createdItems, err := s.orderStore.CreateOrder(ctx, Order{
		CustomerName: order.CustomerName,
		Phone:        order.Phone,
		Email:        order.Email,
		Address:      order.Address,
		City:         order.City,
		Notes:        order.Notes,
		TotalAmount:  order.TotalAmount,
		Status:       StatusPending,
	}, items)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	event := events.OrderCreatedEvent{
		OrderID:      created.ID,
		CustomerName: created.CustomerName,
		City:         created.City,
		TotalAmount:  created.TotalAmount,
		CreatedAt:    created.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish OrderCreatedEvent", "order_id", created.ID, "error", err)
	}

	return toDto(created, createdItems), nil
}

// FindByID retrieves an order with its items.
// Returns ErrOrderNotFound if no order exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (*OrderDto, error) {
	order, items, err := s.orderStore.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order by ID %s: %w", id, err)
	}
	return toDto(order, items), nil
}

// ListAll retrieves every order and returns them as OrderDtos, newest first.
func (s *Service) ListAll(ctx context.Context) ([]OrderDto, error) {
	orders, err := s.orderStore.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	orderDtos := make([]OrderDto, len(orders))
	for i, o := range orders {
		orderDtos[i] = *toDto(&o, nil)
	}
	return orderDtos, nil
}

// UpdateStatus moves an order to a new fulfillment status.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*OrderDto, error) {
	next := Status(status)
	if !next.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	updated, err := s.orderStore.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, fmt.Errorf("failed to update status for order %s: %w", id, err)
	}
	return toDto(updated, nil), nil
}

// toDto converts an Order and its items to an OrderDto.
func toDto(order *Order, items []OrderItem) *OrderDto {
	if order == nil {
		return nil
	}
	var itemsDto []OrderItemDto
	if items != nil {
		itemsDto = make([]OrderItemDto, 0, len(items))
		for _, item := range items {
			itemsDto = append(itemsDto, OrderItemDto{
				ID:          item.ID,
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
			})
		}
	}
	return &OrderDto{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		Phone:        order.Phone,
		Email:        order.Email,
		Address:      order.Address,
		City:         order.City,
		Notes:        order.Notes,
		TotalAmount:  order.TotalAmount,
		Status:       string(order.Status),
		CreatedAt:    order.CreatedAt.Format(time.RFC3339),
		Items:        itemsDto,
	}
}
