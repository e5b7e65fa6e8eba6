package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves a single order with its item lines.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//
//	fmt.Printf("Order %s is %s\n", resp.DisplayNumber, resp.Status)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a validated order retrieval query.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	q := GetOrderQuery{guard: guard.NewConstructorGuard()}
	if err := q.setOrderID(orderID); err != nil {
		return GetOrderQuery{}, err
	}
	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order to retrieve.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	q.orderID = orderID
	return nil
}

// GetOrderItemResponse represents one order line in the read model.
type GetOrderItemResponse struct {
	ID            kernel.UUID
	ProductID     kernel.UUID
	Qty           int
	PriceUSDCents int64
	Status        string
}

// GetOrderQueryResponse represents the order read model: header fields,
// derived totals and the item lines.
type GetOrderQueryResponse struct {
	ID            kernel.UUID
	DisplayNumber string
	DealerID      kernel.UUID
	CreatedBy     kernel.UUID
	Status        string
	Note          string
	ValueDate     time.Time
	TotalUSDCents int64
	TotalUZS      int64
	IsReserve     bool
	Items         []GetOrderItemResponse
}
