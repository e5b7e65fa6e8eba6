// Package actor holds the identity of the user performing an engine operation.
// Authentication and role assignment live in an external collaborator; the
// engine only receives an already-resolved (id, role) pair.
package actor

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrActorIsNotConstructed is returned when an Actor instance was not created
	// through the NewActor factory function.
	ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")
)

// Role represents the authorization role of an actor.
// Roles gate which order status transitions an actor may perform.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleAdmin is the superuser-equivalent role. It bypasses role and
	// ownership checks on transitions (but not the transition graph itself).
	RoleAdmin

	// RoleSales creates orders and may only move orders it created.
	RoleSales

	// RoleWarehouse executes the physical workflow. It is restricted to the
	// strict linear path confirmed→packed→shipped→delivered→returned.
	RoleWarehouse
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:   "unknown",
		RoleAdmin:     "admin",
		RoleSales:     "sales",
		RoleWarehouse: "warehouse",
	}
}

// Validate checks that the role is one of the defined values.
func (r Role) Validate() error {
	switch r {
	case RoleAdmin, RoleSales, RoleWarehouse:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%d is not a valid role", r))
	}
}

// String returns the lowercase role name.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// RoleFromString parses a role from its lowercase name.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if name == s && role != RoleUnknown {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role is invalid",
		fmt.Errorf("%q is not a valid role", s))
}

// Actor is a value object identifying who performs an operation.
type Actor struct {
	id   kernel.UUID
	role Role

	isConstructed bool
}

// NewActor creates an Actor with a validated id and role.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role, isConstructed: true}, nil
}

// Validate ensures the Actor was created via NewActor.
func (a Actor) Validate() error {
	if !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}

// ID returns the actor's unique identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's authorization role.
func (a Actor) Role() Role {
	return a.role
}

// IsAdmin reports whether the actor carries the superuser-equivalent role.
func (a Actor) IsAdmin() bool {
	return a.role == RoleAdmin
}
