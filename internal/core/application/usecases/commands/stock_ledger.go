package commands

import (
	"context"
	"sort"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/product"
	"orderflow/internal/core/ports"
)

// StockLedger applies relative stock deltas to products under row locks.
// It composes into the caller's transaction: the ProductRepository it wraps
// must come from the caller's unit of work, so every delta commits or rolls
// back together with the order change that caused it.
//
// Batch operations lock product rows in ascending product-id order to avoid
// lock-order inversions between concurrent orders touching overlapping
// products.
type StockLedger struct {
	products ports.ProductRepository
}

// NewStockLedger creates a ledger over a transaction-bound product repository.
func NewStockLedger(products ports.ProductRepository) StockLedger {
	return StockLedger{products: products}
}

// Reserve deducts qty from the product's sellable counter.
// Fails with InsufficientStockError instead of clamping at zero.
func (l StockLedger) Reserve(ctx context.Context, productID kernel.UUID, qty int) error {
	return l.mutate(ctx, productID, qty, (*product.Product).Reserve)
}

// Release credits qty back to the product's sellable counter.
func (l StockLedger) Release(ctx context.Context, productID kernel.UUID, qty int) error {
	return l.mutate(ctx, productID, qty, (*product.Product).Release)
}

// MoveToDefect credits qty to the product's defective counter.
func (l StockLedger) MoveToDefect(ctx context.Context, productID kernel.UUID, qty int) error {
	return l.mutate(ctx, productID, qty, (*product.Product).MoveToDefect)
}

// RestoreHealthy credits qty back to the product's sellable counter.
func (l StockLedger) RestoreHealthy(ctx context.Context, productID kernel.UUID, qty int) error {
	return l.mutate(ctx, productID, qty, (*product.Product).RestoreHealthy)
}

// ReserveBatch reserves the given quantity per product, locking rows in
// ascending product-id order. Zero quantities are skipped.
func (l StockLedger) ReserveBatch(ctx context.Context, qtyByProduct map[kernel.UUID]int) error {
	return l.mutateBatch(ctx, qtyByProduct, l.Reserve)
}

// ReleaseBatch releases the given quantity per product, locking rows in
// ascending product-id order. Zero quantities are skipped.
func (l StockLedger) ReleaseBatch(ctx context.Context, qtyByProduct map[kernel.UUID]int) error {
	return l.mutateBatch(ctx, qtyByProduct, l.Release)
}

func (l StockLedger) mutate(
	ctx context.Context,
	productID kernel.UUID,
	qty int,
	op func(p *product.Product, qty int) error,
) error {
	p, err := l.products.GetForUpdate(ctx, productID)
	if err != nil {
		return err
	}

	if err = op(p, qty); err != nil {
		return err
	}

	return l.products.Update(ctx, p)
}

func (l StockLedger) mutateBatch(
	ctx context.Context,
	qtyByProduct map[kernel.UUID]int,
	op func(ctx context.Context, productID kernel.UUID, qty int) error,
) error {
	for _, productID := range sortedProductIDs(qtyByProduct) {
		qty := qtyByProduct[productID]
		if qty == 0 {
			continue
		}
		if err := op(ctx, productID, qty); err != nil {
			return err
		}
	}
	return nil
}

// sortedProductIDs returns the map keys in ascending id order so every
// concurrent transaction acquires product locks in the same sequence.
func sortedProductIDs(qtyByProduct map[kernel.UUID]int) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(qtyByProduct))
	for id := range qtyByProduct {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}
