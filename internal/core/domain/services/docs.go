// Package services provides domain services that orchestrate business rules
// spanning multiple domain entities in the order lifecycle engine.
//
// The package includes:
//   - TransitionPolicy: The pure role/ownership authorization matrix gating
//     every order status transition
//
// Domain services hold logic that doesn't naturally belong to a single
// aggregate root, following Domain-Driven Design principles.
package services
