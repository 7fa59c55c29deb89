package events

import (
	"encoding/json"
	"time"

	"github.com/parfumerie-dz/storefront/pkg/messaging"

	"github.com/google/uuid"
)

type OrderCreatedEvent struct {
	OrderID      uuid.UUID `json:"order_id"`
	CustomerName string    `json:"customer_name"`
	City         string    `json:"city"`
	TotalAmount  int64     `json:"total_amount"`
	CreatedAt    time.Time `json:"created_at"`
}

func (o OrderCreatedEvent) Subject() string {
	return messaging.OrdersCreatedSubject
}

func (o OrderCreatedEvent) Payload() ([]byte, error) {
	return json.Marshal(o)
}
