package queries

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllowedStatusesQueryHandler resolves the order's current position from
// the database and filters the outgoing transitions through the
// authorization table.
type GetAllowedStatusesQueryHandler struct {
	db     *gorm.DB
	policy services.TransitionPolicy
}

// NewGetAllowedStatusesQueryHandler creates a handler for allowed-statuses queries.
func NewGetAllowedStatusesQueryHandler(db *gorm.DB, policy services.TransitionPolicy) GetAllowedStatusesQueryHandler {
	return GetAllowedStatusesQueryHandler{db: db, policy: policy}
}

// Handle executes the query. Only the order's status and creator are needed,
// so the read skips the item lines entirely.
func (h GetAllowedStatusesQueryHandler) Handle(
	ctx context.Context,
	query GetAllowedStatusesQuery,
) (GetAllowedStatusesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAllowedStatusesQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			created_by
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	var statusStr string
	var createdByRaw uuid.UUID
	if err := row.Scan(&statusStr, &createdByRaw); err != nil {
		return GetAllowedStatusesQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	status, err := order.StatusFromString(statusStr)
	if err != nil {
		return GetAllowedStatusesQueryResponse{}, err
	}

	createdBy, err := kernel.UUIDFromBytes(createdByRaw[:])
	if err != nil {
		return GetAllowedStatusesQueryResponse{}, err
	}

	allowed := h.policy.AllowedNext(status, createdBy, query.Actor())

	resp := GetAllowedStatusesQueryResponse{
		Current: status.String(),
		Allowed: make([]string, 0, len(allowed)),
	}
	for _, s := range allowed {
		resp.Allowed = append(resp.Allowed, s.String())
	}

	return resp, nil
}
