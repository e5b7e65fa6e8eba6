// Package statuslogrepo persists the append-only order status audit trail.
package statuslogrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// StatusLogDTO represents the database structure for one audit entry.
// OldStatus is null for the creation entry; ActorID is null for
// system-driven changes.
type StatusLogDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	OldStatus *string
	NewStatus string
	ActorID   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
}

// TableName specifies the database table name for status log entries.
func (StatusLogDTO) TableName() string {
	return "order_status_logs"
}

func fromDomain(entry *order.StatusLog) StatusLogDTO {
	var oldStatus *string
	if s := entry.OldStatus(); s != nil {
		str := s.String()
		oldStatus = &str
	}

	var actorID *uuid.UUID
	if id := entry.ActorID(); id != nil {
		raw := id.Bytes()
		actorID = &raw
	}

	return StatusLogDTO{
		ID:        entry.ID().Bytes(),
		OrderID:   entry.OrderID().Bytes(),
		OldStatus: oldStatus,
		NewStatus: entry.NewStatus().String(),
		ActorID:   actorID,
		CreatedAt: entry.CreatedAt(),
	}
}

func toDomain(dto StatusLogDTO) (*order.StatusLog, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var oldStatus *order.Status
	if dto.OldStatus != nil {
		s, statusErr := order.StatusFromString(*dto.OldStatus)
		if statusErr != nil {
			return nil, statusErr
		}
		oldStatus = &s
	}

	newStatus, err := order.StatusFromString(dto.NewStatus)
	if err != nil {
		return nil, err
	}

	var actorID *kernel.UUID
	if dto.ActorID != nil {
		a, actorErr := kernel.UUIDFromBytes((*dto.ActorID)[:])
		if actorErr != nil {
			return nil, actorErr
		}
		actorID = &a
	}

	return order.NewStatusLog(id, orderID, oldStatus, newStatus, actorID, dto.CreatedAt)
}
