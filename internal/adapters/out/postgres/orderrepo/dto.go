// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Statuses are stored as their lowercase names so that read-side queries and
// check constraints stay human-readable.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	DisplayNumber string    `gorm:"uniqueIndex"`
	DealerID      uuid.UUID `gorm:"type:uuid;index"`
	CreatedBy     uuid.UUID `gorm:"type:uuid;index"`
	Status        string    `gorm:"index"`
	Note          string
	ValueDate     time.Time
	TotalUSDCents int64 `gorm:"column:total_usd_cents"`
	TotalUZS      int64 `gorm:"column:total_uzs"`
	IsReserve     bool
	Items         []ItemDTO `gorm:"foreignKey:OrderID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents the database structure for persisting order lines.
// Quantity and price are immutable after insert; only the status column
// changes over the line's lifetime.
type ItemDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	ProductID     uuid.UUID `gorm:"type:uuid;index"`
	Qty           int
	PriceUSDCents int64 `gorm:"column:price_usd_cents"`
	Status        string
}

// TableName specifies the database table name for order line entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:            item.ID().Bytes(),
			OrderID:       aggregate.ID().Bytes(),
			ProductID:     item.ProductID().Bytes(),
			Qty:           item.Qty(),
			PriceUSDCents: item.PriceUSD().Cents(),
			Status:        item.Status().String(),
		})
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		DisplayNumber: aggregate.DisplayNumber(),
		DealerID:      aggregate.DealerID().Bytes(),
		CreatedBy:     aggregate.CreatedBy().Bytes(),
		Status:        aggregate.Status().String(),
		Note:          aggregate.Note(),
		ValueDate:     aggregate.ValueDate(),
		TotalUSDCents: aggregate.TotalUSD().Cents(),
		TotalUZS:      aggregate.TotalUZS(),
		IsReserve:     aggregate.IsReserve(),
		Items:         items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including its lines using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	dealerID, err := kernel.UUIDFromBytes(dto.DealerID[:])
	if err != nil {
		return nil, err
	}

	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	totalUSD, err := kernel.NewMoneyFromCents(dto.TotalUSDCents)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.DisplayNumber,
		dealerID,
		createdBy,
		status,
		dto.Note,
		dto.ValueDate,
		totalUSD,
		dto.TotalUZS,
		dto.IsReserve,
		items,
	)
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ItemStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoneyFromCents(dto.PriceUSDCents)
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(id, productID, dto.Qty, price, status)
}
