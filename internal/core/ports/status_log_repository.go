package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// StatusLogRepository defines the persistence contract for the append-only
// status audit trail. There is no update or delete: entries are immutable.
type StatusLogRepository interface {
	// Add appends one audit entry.
	Add(ctx context.Context, entry *order.StatusLog) error

	// ListByOrder returns the order's audit trail in chronological order.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.StatusLog, error)
}
