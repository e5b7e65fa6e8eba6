package product_test

import (
	"testing"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreProduct(t *testing.T) {
	t.Run("should rehydrate with valid counters", func(t *testing.T) {
		id := kernel.NewUUID()

		p, err := product.RestoreProduct(id, "steel pipe 40mm", 120, 3)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.True(t, p.ID().IsEqual(id))
		assert.Equal(t, "steel pipe 40mm", p.Name())
		assert.Equal(t, 120, p.StockOK())
		assert.Equal(t, 3, p.StockDefect())
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		p, err := product.RestoreProduct(invalidID, "steel pipe 40mm", 120, 3)

		require.Error(t, err)
		assert.Nil(t, p)
	})

	t.Run("should fail with negative sellable stock", func(t *testing.T) {
		p, err := product.RestoreProduct(kernel.NewUUID(), "steel pipe 40mm", -1, 0)

		require.Error(t, err)
		assert.Nil(t, p)
		assert.Contains(t, err.Error(), "stock_ok is invalid")
	})

	t.Run("should fail with negative defective stock", func(t *testing.T) {
		p, err := product.RestoreProduct(kernel.NewUUID(), "steel pipe 40mm", 0, -5)

		require.Error(t, err)
		assert.Nil(t, p)
		assert.Contains(t, err.Error(), "stock_defect is invalid")
	})
}

func TestProduct_Validate(t *testing.T) {
	t.Run("should fail for nil product", func(t *testing.T) {
		var p *product.Product

		err := p.Validate()

		require.Error(t, err)
		assert.Equal(t, product.ErrProductIsNotConstructed, err)
	})

	t.Run("should fail for zero value product", func(t *testing.T) {
		err := (&product.Product{}).Validate()

		require.Error(t, err)
		assert.Equal(t, product.ErrProductIsNotConstructed, err)
	})
}

func TestProduct_Reserve(t *testing.T) {
	t.Run("should deduct from sellable stock", func(t *testing.T) {
		p, _ := product.RestoreProduct(kernel.NewUUID(), "p", 10, 0)

		require.NoError(t, p.Reserve(4))

		assert.Equal(t, 6, p.StockOK())
	})

	t.Run("should allow reserving the whole stock", func(t *testing.T) {
		p, _ := product.RestoreProduct(kernel.NewUUID(), "p", 10, 0)

		require.NoError(t, p.Reserve(10))

		assert.Equal(t, 0, p.StockOK())
	})

	t.Run("should fail instead of clamping on shortfall", func(t *testing.T) {
		id := kernel.NewUUID()
		p, _ := product.RestoreProduct(id, "p", 3, 0)

		err := p.Reserve(5)

		require.Error(t, err)
		require.ErrorIs(t, err, product.ErrInsufficientStock)

		var stockErr *product.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.True(t, stockErr.ProductID.IsEqual(id))
		assert.Equal(t, 3, stockErr.Available)
		assert.Equal(t, 5, stockErr.Requested)

		// Stock untouched after a failed reservation
		assert.Equal(t, 3, p.StockOK())
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		p, _ := product.RestoreProduct(kernel.NewUUID(), "p", 10, 0)

		require.Error(t, p.Reserve(0))
		require.Error(t, p.Reserve(-2))
		assert.Equal(t, 10, p.StockOK())
	})
}

func TestProduct_Release(t *testing.T) {
	p, _ := product.RestoreProduct(kernel.NewUUID(), "p", 2, 0)

	require.NoError(t, p.Release(5))

	assert.Equal(t, 7, p.StockOK())
	require.Error(t, p.Release(0))
}

func TestProduct_MoveToDefect(t *testing.T) {
	p, _ := product.RestoreProduct(kernel.NewUUID(), "p", 10, 1)

	require.NoError(t, p.MoveToDefect(2))

	// Defective returns never touch the sellable counter.
	assert.Equal(t, 10, p.StockOK())
	assert.Equal(t, 3, p.StockDefect())
}

func TestProduct_RestoreHealthy(t *testing.T) {
	p, _ := product.RestoreProduct(kernel.NewUUID(), "p", 10, 1)

	require.NoError(t, p.RestoreHealthy(2))

	assert.Equal(t, 12, p.StockOK())
	assert.Equal(t, 1, p.StockDefect())
}

func TestInsufficientStockError_Message(t *testing.T) {
	id := kernel.NewUUID()
	err := product.NewInsufficientStockError(id, 1, 4)

	assert.Contains(t, err.Error(), "insufficient stock")
	assert.Contains(t, err.Error(), id.String())
	assert.Contains(t, err.Error(), "1 sellable units")
	assert.Contains(t, err.Error(), "4 requested")
}
