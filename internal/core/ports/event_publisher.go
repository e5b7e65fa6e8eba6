package ports

import (
	"context"
	"time"
)

// OrderStatusChanged is the post-commit event consumed by the notification
// and audit collaborators. It is published only after the business
// transaction commits; publish failures never roll the transaction back.
type OrderStatusChanged struct {
	OrderID       string    `json:"order_id"`
	DisplayNumber string    `json:"display_number"`
	OldStatus     string    `json:"old_status"`
	NewStatus     string    `json:"new_status"`
	ActorID       *string   `json:"actor_id,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// EventPublisher is the fire-and-forget outbound contract for lifecycle events.
type EventPublisher interface {
	// PublishOrderStatusChanged publishes one status change event.
	PublishOrderStatusChanged(ctx context.Context, event OrderStatusChanged) error
}
