// Package returnrepo persists immutable return records.
package returnrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// ReturnDTO represents the database structure for one return record.
type ReturnDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	ItemID         uuid.UUID `gorm:"type:uuid;index"`
	Qty            int
	IsDefect       bool
	ProcessedBy    uuid.UUID `gorm:"type:uuid"`
	AmountUSDCents int64     `gorm:"column:amount_usd_cents"`
	CreatedAt      time.Time
}

// TableName specifies the database table name for return records.
func (ReturnDTO) TableName() string {
	return "order_returns"
}

func fromDomain(record *order.Return) ReturnDTO {
	return ReturnDTO{
		ID:             record.ID().Bytes(),
		OrderID:        record.OrderID().Bytes(),
		ItemID:         record.ItemID().Bytes(),
		Qty:            record.Qty(),
		IsDefect:       record.IsDefect(),
		ProcessedBy:    record.ProcessedBy().Bytes(),
		AmountUSDCents: record.AmountUSD().Cents(),
		CreatedAt:      record.CreatedAt(),
	}
}

func toDomain(dto ReturnDTO) (*order.Return, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}

	processedBy, err := kernel.UUIDFromBytes(dto.ProcessedBy[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoneyFromCents(dto.AmountUSDCents)
	if err != nil {
		return nil, err
	}

	return order.NewReturn(id, orderID, itemID, dto.Qty, dto.IsDefect, processedBy, amount, dto.CreatedAt)
}
