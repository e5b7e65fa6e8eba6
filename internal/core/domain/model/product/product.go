// Package product models the two stock counters the engine mutates on a
// catalog product. The catalog itself (naming, pricing, CRUD) is an external
// collaborator; the engine only reads and adjusts stock_ok and stock_defect.
package product

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not
	// created through RestoreProduct.
	ErrProductIsNotConstructed = errors.New("Product must be created via RestoreProduct constructor")

	// ErrInsufficientStock is the unwrap target of InsufficientStockError.
	// A failed reservation is a consistency error, never silently clamped.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError reports a reservation that would drive stock_ok
// negative. Available and Requested let the caller surface the exact shortfall.
type InsufficientStockError struct {
	ProductID kernel.UUID
	Available int
	Requested int
}

// NewInsufficientStockError creates an InsufficientStockError.
func NewInsufficientStockError(productID kernel.UUID, available, requested int) *InsufficientStockError {
	return &InsufficientStockError{ProductID: productID, Available: available, Requested: requested}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: product %s has %d sellable units, %d requested",
		ErrInsufficientStock, e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// Product is the aggregate holding a catalog product's stock counters.
//
// Product follows these invariants:
//   - stock_ok and stock_defect never go negative
//   - every counter change is a relative delta applied under a row lock
//   - a reservation that exceeds stock_ok fails instead of clamping to zero
type Product struct {
	id          kernel.UUID
	name        string
	stockOK     int
	stockDefect int

	isConstructed bool
}

// RestoreProduct rehydrates a product from persistence.
// Counters must be non-negative; the engine never creates products itself.
func RestoreProduct(id kernel.UUID, name string, stockOK, stockDefect int) (*Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if stockOK < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("stock_ok is invalid",
			fmt.Errorf("%d is negative", stockOK))
	}
	if stockDefect < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("stock_defect is invalid",
			fmt.Errorf("%d is negative", stockDefect))
	}

	return &Product{
		id:            id,
		name:          name,
		stockOK:       stockOK,
		stockDefect:   stockDefect,
		isConstructed: true,
	}, nil
}

// Validate ensures the Product was created via RestoreProduct.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product's display name.
func (p *Product) Name() string {
	return p.name
}

// StockOK returns the sellable quantity.
func (p *Product) StockOK() int {
	return p.stockOK
}

// StockDefect returns the quantity known defective.
func (p *Product) StockDefect() int {
	return p.stockDefect
}

// Reserve deducts qty from the sellable counter when an order enters an
// active status. Fails with InsufficientStockError when stock_ok < qty.
func (p *Product) Reserve(qty int) error {
	if err := validateQty(qty); err != nil {
		return err
	}
	if p.stockOK < qty {
		return NewInsufficientStockError(p.id, p.stockOK, qty)
	}

	p.stockOK -= qty
	return nil
}

// Release credits qty back to the sellable counter when an order leaves the
// active set without shipping the goods (cancellation).
func (p *Product) Release(qty int) error {
	if err := validateQty(qty); err != nil {
		return err
	}

	p.stockOK += qty
	return nil
}

// MoveToDefect credits qty to the defective counter. Used when returned
// units come back damaged: they re-enter the warehouse but are not sellable.
func (p *Product) MoveToDefect(qty int) error {
	if err := validateQty(qty); err != nil {
		return err
	}

	p.stockDefect += qty
	return nil
}

// RestoreHealthy credits qty back to the sellable counter. Used when
// returned units come back undamaged.
func (p *Product) RestoreHealthy(qty int) error {
	if err := validateQty(qty); err != nil {
		return err
	}

	p.stockOK += qty
	return nil
}

func validateQty(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty is invalid",
			fmt.Errorf("%d is not greater than 0", qty))
	}
	return nil
}
