package ports

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// including their lines.
type OrderRepository interface {
	// Add persists a new order aggregate with its item batch.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate: status, note,
	// totals, and line statuses. Identity fields are never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its lines, without locking.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order with its lines under an exclusive row
	// lock, serializing concurrent lifecycle operations on the same order.
	// Returns a lock-timeout error when the lock cannot be acquired in time.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByItemIDForUpdate resolves the order owning the given line and
	// retrieves it under an exclusive row lock.
	GetByItemIDForUpdate(ctx context.Context, itemID kernel.UUID) (*order.Order, error)

	// NextDisplayNumber allocates the next human-readable order number for
	// the given date from the database sequence.
	NextDisplayNumber(ctx context.Context, date time.Time) (string, error)
}
