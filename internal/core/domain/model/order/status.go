package order

import (
	"errors"
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	created ──> confirmed ──> packed ──> shipped ──> delivered
//	   │            │           │          │  │          │
//	   │            │           │          │  └──────────┼──> returned
//	   └────────────┴───────────┴──────────┴──> cancelled
//
// cancelled and returned are terminal: no status leaves them.
// Statuses confirmed through delivered are "active": ordered quantity is
// reserved against inventory while the order is in one of them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status. Stock is not yet reserved.
	Created

	// Confirmed means the order was accepted; stock is reserved.
	Confirmed

	// Packed means the goods were picked and packed in the warehouse.
	Packed

	// Shipped means the goods left the warehouse.
	Shipped

	// Delivered means the dealer received the goods.
	Delivered

	// Cancelled is terminal; any reserved stock was released.
	Cancelled

	// Returned is terminal; every unit came back through a return.
	Returned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Created:   "created",
		Confirmed: "confirmed",
		Packed:    "packed",
		Shipped:   "shipped",
		Delivered: "delivered",
		Cancelled: "cancelled",
		Returned:  "returned",
	}
}

// getTransitions returns the full FSM graph. Terminal statuses are present
// with no outgoing edges so that iteration covers every state.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Created:   {Confirmed, Cancelled},
		Confirmed: {Packed, Cancelled},
		Packed:    {Shipped, Cancelled},
		Shipped:   {Delivered, Returned, Cancelled},
		Delivered: {Returned},
		Cancelled: {},
		Returned:  {},
	}
}

// Validate checks if the Status value is one of the defined statuses.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase status name.
// Implements fmt.Stringer; safe to call on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses a status from its lowercase name.
// Used when accepting a target status from the API layer.
func StatusFromString(v string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == v && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", v))
}

// IsActive reports whether orders in this status hold reserved stock.
func (s Status) IsActive() bool {
	switch s {
	case Confirmed, Packed, Shipped, Delivered:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == Cancelled || s == Returned
}

// CanTransitionTo reports whether the FSM graph contains an edge from s to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from s in one transition,
// in stable graph order. Terminal statuses return an empty slice.
func (s Status) NextStatuses() []Status {
	next := getTransitions()[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// ErrInvalidTransition is the unwrap target of InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports an attempted status change with no
// corresponding edge in the FSM graph.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given edge.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
