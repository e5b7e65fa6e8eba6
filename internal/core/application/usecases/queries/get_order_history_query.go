package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
		"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
	)
)

// GetOrderHistoryQuery retrieves the chronological status trail of an order,
// including the implicit entry written at creation.
type GetOrderHistoryQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a validated history query.
func NewGetOrderHistoryQuery(orderID kernel.UUID) (GetOrderHistoryQuery, error) {
	q := GetOrderHistoryQuery{guard: guard.NewConstructorGuard()}
	if err := q.setOrderID(orderID); err != nil {
		return GetOrderHistoryQuery{}, err
	}
	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderHistoryQueryIsNotConstructed if validation fails.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// OrderID returns the order whose trail is requested.
func (q GetOrderHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderHistoryQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	q.orderID = orderID
	return nil
}

// GetOrderHistoryQueryResponse represents one audit entry. OldStatus is nil
// for the creation entry; ActorID is nil for system-driven changes.
type GetOrderHistoryQueryResponse struct {
	ID        kernel.UUID
	OldStatus *string
	NewStatus string
	ActorID   *kernel.UUID
	CreatedAt time.Time
}
