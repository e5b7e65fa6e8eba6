package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// ReturnRepository defines the persistence contract for return records.
// Records are immutable once created.
type ReturnRepository interface {
	// Add persists one return record.
	Add(ctx context.Context, record *order.Return) error

	// SumByItem returns the cumulative quantity already returned against a
	// line, used to reject over-returning across multiple calls.
	SumByItem(ctx context.Context, itemID kernel.UUID) (int, error)

	// ListByOrder returns all return records for an order.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Return, error)
}
