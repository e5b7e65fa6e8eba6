package returnrepo

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormReturnRepository implements ReturnRepository using GORM.
// Records are immutable once created.
type GormReturnRepository struct {
	db *gorm.DB
}

// NewGormReturnRepository creates a new GORM return repository.
func NewGormReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

// Add persists one return record.
func (r *GormReturnRepository) Add(ctx context.Context, record *order.Return) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// SumByItem returns the cumulative quantity already returned against a line.
func (r *GormReturnRepository) SumByItem(ctx context.Context, itemID kernel.UUID) (int, error) {
	if err := itemID.Validate(); err != nil {
		return 0, err
	}

	var total int
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(qty), 0) FROM order_returns WHERE item_id = ?
	`, itemID.String()).Row().Scan(&total)
	if err != nil {
		return 0, err
	}

	return total, nil
}

// ListByOrder returns all return records for an order, oldest first.
func (r *GormReturnRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Return, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ReturnDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*order.Return, 0, len(dtos))
	for _, dto := range dtos {
		record, recordErr := toDomain(dto)
		if recordErr != nil {
			return nil, recordErr
		}
		records = append(records, record)
	}

	return records, nil
}
