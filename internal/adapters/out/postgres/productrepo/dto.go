// Package productrepo persists the stock counters the engine mutates on
// catalog products. The catalog's own columns live outside this module; the
// repository reads and writes only what the stock ledger needs.
package productrepo

import (
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO represents the database structure for product stock counters.
type ProductDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	StockOK     int `gorm:"column:stock_ok"`
	StockDefect int `gorm:"column:stock_defect"`
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(aggregate *product.Product) ProductDTO {
	return ProductDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		StockOK:     aggregate.StockOK(),
		StockDefect: aggregate.StockDefect(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(id, dto.Name, dto.StockOK, dto.StockDefect)
}
