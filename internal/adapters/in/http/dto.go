package http

import (
	"time"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/order"
)

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	DealerID  string             `json:"dealer_id"`
	Note      string             `json:"note"`
	ValueDate time.Time          `json:"value_date"`
	IsReserve bool               `json:"is_reserve"`
	Items     []OrderItemRequest `json:"items"`
}

// OrderItemRequest is one line of a create-order or add-item request.
type OrderItemRequest struct {
	ProductID     string `json:"product_id"`
	Qty           int    `json:"qty"`
	PriceUSDCents int64  `json:"price_usd_cents"`
}

// ChangeStatusRequest is the body of POST /api/v1/orders/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// RegisterReturnRequest is the body of POST /api/v1/order-items/:id/returns.
type RegisterReturnRequest struct {
	Qty      int  `json:"qty"`
	IsDefect bool `json:"is_defect"`
}

// OrderItemResponse is one order line in a response body.
type OrderItemResponse struct {
	ID            string `json:"id"`
	ProductID     string `json:"product_id"`
	Qty           int    `json:"qty"`
	PriceUSDCents int64  `json:"price_usd_cents"`
	Status        string `json:"status"`
}

// OrderResponse is the order representation returned by command and query endpoints.
type OrderResponse struct {
	ID            string              `json:"id"`
	DisplayNumber string              `json:"display_number"`
	DealerID      string              `json:"dealer_id"`
	CreatedBy     string              `json:"created_by"`
	Status        string              `json:"status"`
	Note          string              `json:"note"`
	ValueDate     time.Time           `json:"value_date"`
	TotalUSDCents int64               `json:"total_usd_cents"`
	TotalUZS      int64               `json:"total_uzs"`
	IsReserve     bool                `json:"is_reserve"`
	Items         []OrderItemResponse `json:"items"`
}

// AllowedStatusesResponse is the body of GET /api/v1/orders/:id/allowed-statuses.
type AllowedStatusesResponse struct {
	Current string   `json:"current"`
	Allowed []string `json:"allowed"`
}

// HistoryEntryResponse is one audit entry in the order history response.
type HistoryEntryResponse struct {
	ID        string    `json:"id"`
	OldStatus *string   `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ActorID   *string   `json:"actor_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ReturnResponse is the body returned after a return is registered.
type ReturnResponse struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"order_id"`
	ItemID         string    `json:"item_id"`
	Qty            int       `json:"qty"`
	IsDefect       bool      `json:"is_defect"`
	ProcessedBy    string    `json:"processed_by"`
	AmountUSDCents int64     `json:"amount_usd_cents"`
	CreatedAt      time.Time `json:"created_at"`
}

func orderToResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemResponse{
			ID:            item.ID().String(),
			ProductID:     item.ProductID().String(),
			Qty:           item.Qty(),
			PriceUSDCents: item.PriceUSD().Cents(),
			Status:        item.Status().String(),
		})
	}

	return OrderResponse{
		ID:            o.ID().String(),
		DisplayNumber: o.DisplayNumber(),
		DealerID:      o.DealerID().String(),
		CreatedBy:     o.CreatedBy().String(),
		Status:        o.Status().String(),
		Note:          o.Note(),
		ValueDate:     o.ValueDate(),
		TotalUSDCents: o.TotalUSD().Cents(),
		TotalUZS:      o.TotalUZS(),
		IsReserve:     o.IsReserve(),
		Items:         items,
	}
}

func orderQueryToResponse(resp queries.GetOrderQueryResponse) OrderResponse {
	items := make([]OrderItemResponse, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, OrderItemResponse{
			ID:            item.ID.String(),
			ProductID:     item.ProductID.String(),
			Qty:           item.Qty,
			PriceUSDCents: item.PriceUSDCents,
			Status:        item.Status,
		})
	}

	return OrderResponse{
		ID:            resp.ID.String(),
		DisplayNumber: resp.DisplayNumber,
		DealerID:      resp.DealerID.String(),
		CreatedBy:     resp.CreatedBy.String(),
		Status:        resp.Status,
		Note:          resp.Note,
		ValueDate:     resp.ValueDate,
		TotalUSDCents: resp.TotalUSDCents,
		TotalUZS:      resp.TotalUZS,
		IsReserve:     resp.IsReserve,
		Items:         items,
	}
}

func returnToResponse(record *order.Return) ReturnResponse {
	return ReturnResponse{
		ID:             record.ID().String(),
		OrderID:        record.OrderID().String(),
		ItemID:         record.ItemID().String(),
		Qty:            record.Qty(),
		IsDefect:       record.IsDefect(),
		ProcessedBy:    record.ProcessedBy().String(),
		AmountUSDCents: record.AmountUSD().Cents(),
		CreatedAt:      record.CreatedAt(),
	}
}

func historyToResponse(entries []queries.GetOrderHistoryQueryResponse) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		var actorID *string
		if entry.ActorID != nil {
			s := entry.ActorID.String()
			actorID = &s
		}
		out = append(out, HistoryEntryResponse{
			ID:        entry.ID.String(),
			OldStatus: entry.OldStatus,
			NewStatus: entry.NewStatus,
			ActorID:   actorID,
			CreatedAt: entry.CreatedAt,
		})
	}
	return out
}
