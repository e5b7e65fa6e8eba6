// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// and persistence; stock movement and audit logging happen inside the same
// transaction as the status change they belong to.
package commands

import (
	"context"

	"orderflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ProductRepoFactory provides access to the product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// StatusLogRepoFactory provides access to the status log repository within a transaction.
	StatusLogRepoFactory interface {
		StatusLogRepository() ports.StatusLogRepository
	}

	// ReturnRepoFactory provides access to the return repository within a transaction.
	ReturnRepoFactory interface {
		ReturnRepository() ports.ReturnRepository
	}

	// OrderUoW manages transactions for operations that only touch the order
	// aggregate and its audit trail (order creation).
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		StatusLogRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// LifecycleUoW manages transactions for operations that move stock
	// together with order state: status changes, returns, and item edits on
	// active orders. The order row, the product rows, the audit entry, and
	// the return record all commit or roll back as one.
	LifecycleUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		StatusLogRepoFactory
		ReturnRepoFactory
	}

	// LifecycleUoWFactory creates new lifecycle unit of work instances.
	LifecycleUoWFactory interface {
		Create() LifecycleUoW
	}
)
