// Package messaging defines the event contract between the storefront and
// downstream consumers such as fulfillment tooling.
package messaging

import (
	"context"
)

// Event is a publishable storefront event.
type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

// Publisher delivers events to the broker.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
