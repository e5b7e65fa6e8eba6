package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrGetAllowedStatusesQueryIsNotConstructed = errors.New(
		"GetAllowedStatusesQuery must be created via NewGetAllowedStatusesQuery constructor",
	)
)

// GetAllowedStatusesQuery computes which statuses the given actor may move an
// order to from its current position. Drives the UI: buttons the caller
// renders are exactly the statuses this query returns.
type GetAllowedStatusesQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   actor.Actor

	guard guard.ConstructorGuard
}

// NewGetAllowedStatusesQuery creates a validated allowed-statuses query.
func NewGetAllowedStatusesQuery(orderID kernel.UUID, act actor.Actor) (GetAllowedStatusesQuery, error) {
	q := GetAllowedStatusesQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		q.setOrderID(orderID),
		q.setActor(act),
	); err != nil {
		return GetAllowedStatusesQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAllowedStatusesQueryIsNotConstructed if validation fails.
func (q GetAllowedStatusesQuery) Validate() error {
	return q.guard.Validate(ErrGetAllowedStatusesQueryIsNotConstructed)
}

// OrderID returns the order to inspect.
func (q GetAllowedStatusesQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Actor returns who asks for the allowed moves.
func (q GetAllowedStatusesQuery) Actor() actor.Actor {
	return q.actor
}

func (q *GetAllowedStatusesQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	q.orderID = orderID
	return nil
}

func (q *GetAllowedStatusesQuery) setActor(act actor.Actor) error {
	if err := act.Validate(); err != nil {
		return err
	}
	q.actor = act
	return nil
}

// GetAllowedStatusesQueryResponse lists the current status and the statuses
// the actor is authorized to move the order to. Allowed is empty, never nil,
// for terminal orders and for actors with no permitted moves.
type GetAllowedStatusesQueryResponse struct {
	Current string
	Allowed []string
}
