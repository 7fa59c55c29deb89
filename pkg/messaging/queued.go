package messaging

import (
	"context"
	"log/slog"

	"github.com/parfumerie-dz/storefront/pkg/dispatch"
)

// QueuedPublisher is a Publisher that buffers events while no transport
// is attached. Services can publish from the first request on; events
// raised before the broker connection is up are flushed, in order, as
// soon as Attach is called.
type QueuedPublisher struct {
	queue  *dispatch.Queue[Event]
	logger *slog.Logger
}

// NewQueuedPublisher creates a detached publisher holding at most backlog
// events (<= 0 uses the dispatch default).
func NewQueuedPublisher(backlog int, logger *slog.Logger) *QueuedPublisher {
	return &QueuedPublisher{
		queue:  dispatch.NewQueue[Event](backlog),
		logger: logger.With("component", "queued_publisher"),
	}
}

// Publish enqueues the event for the attached transport. It never fails:
// delivery errors surface in the transport handler, not at the call site.
func (p *QueuedPublisher) Publish(_ context.Context, event Event) error {
	p.queue.Dispatch(event)
	return nil
}

// Attach binds the transport and flushes any backlog in publish order.
func (p *QueuedPublisher) Attach(delegate Publisher) {
	p.queue.Bind(func(event Event) {
		if err := delegate.Publish(context.Background(), event); err != nil {
			p.logger.Error("Failed to publish event", "subject", event.Subject(), "error", err)
		}
	})
}

// Detach unbinds the transport; subsequent events queue again.
func (p *QueuedPublisher) Detach() {
	p.queue.Unbind()
}

// Pending reports the number of events awaiting a transport.
func (p *QueuedPublisher) Pending() int {
	return p.queue.Pending()
}
