package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for the stock counters
// the engine mutates on catalog products. Product CRUD itself belongs to the
// catalog collaborator.
type ProductRepository interface {
	// Get retrieves a product without locking.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetForUpdate retrieves a product under an exclusive row lock so that a
	// stock delta can be applied without racing concurrent orders.
	// Returns a lock-timeout error when the lock cannot be acquired in time.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// Update persists the product's stock counters.
	Update(ctx context.Context, aggregate *product.Product) error

	// Add persists a new product. The engine itself never creates products;
	// this exists for the catalog collaborator and test fixtures.
	Add(ctx context.Context, aggregate *product.Product) error
}
