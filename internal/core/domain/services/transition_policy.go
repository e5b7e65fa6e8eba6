package services

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

var (
	// ErrForbidden is the unwrap target for every authorization failure
	// produced by the transition policy.
	ErrForbidden = errors.New("forbidden")
)

// Reasons carried by ForbiddenError so the API layer can tell the user which
// rule rejected the transition.
const (
	ReasonRoleNotPermitted  = "role is not permitted for this transition"
	ReasonNotOrderOwner     = "sales users may only move orders they created"
	ReasonWarehouseWorkflow = "warehouse users must follow the strict workflow"
)

// ForbiddenError reports a transition rejected by the role/ownership matrix.
type ForbiddenError struct {
	Role   actor.Role
	From   order.Status
	To     order.Status
	Reason string
}

// NewForbiddenError creates a ForbiddenError for the given edge and reason.
func NewForbiddenError(role actor.Role, from, to order.Status, reason string) *ForbiddenError {
	return &ForbiddenError{Role: role, From: from, To: to, Reason: reason}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s cannot move %s -> %s (%s)",
		ErrForbidden, e.Role, e.From, e.To, e.Reason)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

type transitionKey struct {
	from order.Status
	to   order.Status
}

// getTransitionRoles returns the role matrix: for each FSM edge, the roles
// permitted to perform it. Admin is intentionally absent — it bypasses the
// matrix entirely. Sales entries additionally require order ownership.
func getTransitionRoles() map[transitionKey][]actor.Role {
	return map[transitionKey][]actor.Role{
		{order.Created, order.Confirmed}:   {actor.RoleSales},
		{order.Created, order.Cancelled}:   {actor.RoleSales},
		{order.Confirmed, order.Packed}:    {actor.RoleWarehouse, actor.RoleSales},
		{order.Confirmed, order.Cancelled}: {actor.RoleSales},
		{order.Packed, order.Shipped}:      {actor.RoleWarehouse, actor.RoleSales},
		{order.Packed, order.Cancelled}:    {},
		{order.Shipped, order.Delivered}:   {actor.RoleWarehouse, actor.RoleSales},
		{order.Shipped, order.Returned}:    {actor.RoleSales},
		{order.Shipped, order.Cancelled}:   {},
		{order.Delivered, order.Returned}:  {actor.RoleWarehouse, actor.RoleSales},
	}
}

// getWarehousePath returns the only edges a warehouse actor may perform:
// the strict linear sub-path through the physical workflow. A warehouse actor
// targeting any other pair is rejected before the graph is even consulted,
// so skipping a step reports the workflow violation rather than a missing edge.
func getWarehousePath() map[transitionKey]struct{} {
	return map[transitionKey]struct{}{
		{order.Confirmed, order.Packed}:   {},
		{order.Packed, order.Shipped}:     {},
		{order.Shipped, order.Delivered}:  {},
		{order.Delivered, order.Returned}: {},
	}
}

// TransitionPolicy is the pure authorization matrix for order status changes.
// It performs no mutation and no I/O; both the mutating path and the
// read-only "allowed next statuses" helper consult the same instance, so the
// two can never disagree.
type TransitionPolicy struct{}

// NewTransitionPolicy creates a TransitionPolicy.
func NewTransitionPolicy() TransitionPolicy {
	return TransitionPolicy{}
}

// Validate reports whether act may move an order it sees in status from to
// target. createdBy identifies the order's creator for the sales ownership
// rule. A same-status call is permitted for every role (the caller treats it
// as an idempotent no-op), subject only to the sales ownership rule.
//
// Rule order:
//  1. warehouse actors must stay on the strict linear path
//  2. the edge must exist in the FSM graph (admin included)
//  3. admin bypasses role and ownership checks
//  4. the actor's role must be in the edge's allowed set
//  5. sales actors must have created the order
func (p TransitionPolicy) Validate(from, target order.Status, createdBy kernel.UUID, act actor.Actor) error {
	if err := act.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	if from == target {
		return p.checkOwnership(from, target, createdBy, act)
	}

	key := transitionKey{from: from, to: target}

	if act.Role() == actor.RoleWarehouse {
		if _, ok := getWarehousePath()[key]; !ok {
			return NewForbiddenError(act.Role(), from, target, ReasonWarehouseWorkflow)
		}
	}

	if !from.CanTransitionTo(target) {
		return order.NewInvalidTransitionError(from, target)
	}

	if act.IsAdmin() {
		return nil
	}

	allowed := false
	for _, role := range getTransitionRoles()[key] {
		if role == act.Role() {
			allowed = true
			break
		}
	}
	if !allowed {
		return NewForbiddenError(act.Role(), from, target, ReasonRoleNotPermitted)
	}

	return p.checkOwnership(from, target, createdBy, act)
}

// ValidateOrder is a convenience wrapper over Validate for a loaded aggregate.
func (p TransitionPolicy) ValidateOrder(o *order.Order, target order.Status, act actor.Actor) error {
	if err := o.Validate(); err != nil {
		return err
	}
	return p.Validate(o.Status(), target, o.CreatedBy(), act)
}

// AllowedNext returns the statuses act may move the order to from its current
// status: the FSM edges intersected with the role/ownership matrix, never a
// superset. Used by UI layers to pre-filter choices.
func (p TransitionPolicy) AllowedNext(from order.Status, createdBy kernel.UUID, act actor.Actor) []order.Status {
	allowed := make([]order.Status, 0)
	for _, target := range from.NextStatuses() {
		if p.Validate(from, target, createdBy, act) == nil {
			allowed = append(allowed, target)
		}
	}
	return allowed
}

// CanEditItems reports whether act may edit the order's lines. Lines are
// editable while the order is still in created status by its creator or an
// admin; an admin may additionally edit a confirmed order (the added quantity
// must then be reserved by the caller).
func (p TransitionPolicy) CanEditItems(status order.Status, createdBy kernel.UUID, act actor.Actor) error {
	if err := act.Validate(); err != nil {
		return err
	}

	if act.IsAdmin() {
		if status == order.Created || status == order.Confirmed {
			return nil
		}
		return NewForbiddenError(act.Role(), status, status, ReasonRoleNotPermitted)
	}

	if status != order.Created {
		return NewForbiddenError(act.Role(), status, status, ReasonRoleNotPermitted)
	}
	if act.Role() != actor.RoleSales {
		return NewForbiddenError(act.Role(), status, status, ReasonRoleNotPermitted)
	}
	if !act.ID().IsEqual(createdBy) {
		return NewForbiddenError(act.Role(), status, status, ReasonNotOrderOwner)
	}

	return nil
}

// CanRegisterReturn reports whether act may register a return on the order.
// Admin and warehouse may process any return; sales only on their own orders.
func (p TransitionPolicy) CanRegisterReturn(createdBy kernel.UUID, act actor.Actor) error {
	if err := act.Validate(); err != nil {
		return err
	}

	switch act.Role() {
	case actor.RoleAdmin, actor.RoleWarehouse:
		return nil
	case actor.RoleSales:
		if !act.ID().IsEqual(createdBy) {
			return NewForbiddenError(act.Role(), order.Unknown, order.Unknown, ReasonNotOrderOwner)
		}
		return nil
	default:
		return NewForbiddenError(act.Role(), order.Unknown, order.Unknown, ReasonRoleNotPermitted)
	}
}

func (TransitionPolicy) checkOwnership(from, target order.Status, createdBy kernel.UUID, act actor.Actor) error {
	if act.Role() == actor.RoleSales && !act.ID().IsEqual(createdBy) {
		return NewForbiddenError(act.Role(), from, target, ReasonNotOrderOwner)
	}
	return nil
}
