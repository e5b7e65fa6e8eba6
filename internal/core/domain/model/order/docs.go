// Package order provides domain entities and business logic for the order
// lifecycle engine. It implements the Order aggregate root with lifecycle
// management, line items, returns, and the append-only status audit trail.
//
// The package includes:
//   - Order: The aggregate root owning lines, totals, and lifecycle state
//   - Status: A state machine that enforces valid order status transitions
//   - Item: An order line with immutable quantity and captured USD price
//   - StatusLog: An append-only record of every observed status change
//   - Return: An immutable record of a quantity returned against a line
//
// Key business rules:
//   - Status follows the workflow created -> confirmed -> packed -> shipped
//     -> delivered, with cancellation and returns as defined by the FSM graph
//   - cancelled and returned are terminal
//   - totals always equal the sum of live line totals converted at the
//     exchange rate valid on the order's value date
//   - line quantity and price never change; returns create separate records
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
