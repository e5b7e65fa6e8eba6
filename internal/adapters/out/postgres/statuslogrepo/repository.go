package statuslogrepo

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormStatusLogRepository implements StatusLogRepository using GORM.
// The trail is append-only: there is no update or delete path.
type GormStatusLogRepository struct {
	db *gorm.DB
}

// NewGormStatusLogRepository creates a new GORM status log repository.
func NewGormStatusLogRepository(db *gorm.DB) *GormStatusLogRepository {
	return &GormStatusLogRepository{db: db}
}

// Add appends one audit entry.
func (r *GormStatusLogRepository) Add(ctx context.Context, entry *order.StatusLog) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByOrder returns the order's audit trail in chronological order.
func (r *GormStatusLogRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.StatusLog, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StatusLogDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*order.StatusLog, 0, len(dtos))
	for _, dto := range dtos {
		entry, entryErr := toDomain(dto)
		if entryErr != nil {
			return nil, entryErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
