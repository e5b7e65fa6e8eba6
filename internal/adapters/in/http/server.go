// Package http exposes the order lifecycle engine over a JSON API.
// Authentication lives upstream: the gateway resolves the user and forwards
// the identity as X-Actor-Id and X-Actor-Role headers, which this layer
// converts into a domain actor.
package http

import (
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	headerActorID   = "X-Actor-Id"
	headerActorRole = "X-Actor-Role"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler    commands.CreateOrderCommandHandler
	changeStatusHandler   commands.ChangeOrderStatusCommandHandler
	addOrderItemHandler   commands.AddOrderItemCommandHandler
	registerReturnHandler commands.RegisterReturnCommandHandler

	// Query handlers
	getOrderHandler        queries.GetOrderQueryHandler
	allowedStatusesHandler queries.GetAllowedStatusesQueryHandler
	orderHistoryHandler    queries.GetOrderHistoryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	addOrderItemHandler commands.AddOrderItemCommandHandler,
	registerReturnHandler commands.RegisterReturnCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	allowedStatusesHandler queries.GetAllowedStatusesQueryHandler,
	orderHistoryHandler queries.GetOrderHistoryQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		changeStatusHandler:    changeStatusHandler,
		addOrderItemHandler:    addOrderItemHandler,
		registerReturnHandler:  registerReturnHandler,
		getOrderHandler:        getOrderHandler,
		allowedStatusesHandler: allowedStatusesHandler,
		orderHistoryHandler:    orderHistoryHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/:id", s.GetOrder)
	v1.POST("/orders/:id/status", s.ChangeOrderStatus)
	v1.GET("/orders/:id/allowed-statuses", s.GetAllowedStatuses)
	v1.GET("/orders/:id/history", s.GetOrderHistory)
	v1.POST("/orders/:id/items", s.AddOrderItem)
	v1.POST("/order-items/:id/returns", s.RegisterReturn)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - creates a new order with its
// initial item batch.
func (s *Server) CreateOrder(ctx echo.Context) error {
	act, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req CreateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	dealerID, err := kernel.UUIDFromString(req.DealerID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("dealer_id", err))
	}

	items, err := itemSpecs(req.Items)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(dealerID, act, req.Note, req.ValueDate, req.IsReserve, items)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(o))
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status - moves an order
// along the lifecycle graph.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	act, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := orderIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req ChangeStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target, act)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.changeStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(o))
}

// AddOrderItem handles POST /api/v1/orders/:id/items - appends a line to an
// editable order.
func (s *Server) AddOrderItem(ctx echo.Context) error {
	act, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := orderIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req OrderItemRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	specs, err := itemSpecs([]OrderItemRequest{req})
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAddOrderItemCommand(orderID, specs[0], act)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.addOrderItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(o))
}

// RegisterReturn handles POST /api/v1/order-items/:id/returns - registers a
// healthy or defective return against an order line.
func (s *Server) RegisterReturn(ctx echo.Context) error {
	act, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	itemID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("item id", err))
	}

	var req RegisterReturnRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewRegisterReturnCommand(itemID, req.Qty, req.IsDefect, act)
	if err != nil {
		return writeError(ctx, err)
	}

	record, err := s.registerReturnHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, returnToResponse(record))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderQueryToResponse(resp))
}

// GetAllowedStatuses handles GET /api/v1/orders/:id/allowed-statuses -
// returns the statuses the calling actor may move the order to.
func (s *Server) GetAllowedStatuses(ctx echo.Context) error {
	act, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := orderIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetAllowedStatusesQuery(orderID, act)
	if err != nil {
		return writeError(ctx, err)
	}

	resp, err := s.allowedStatusesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AllowedStatusesResponse{
		Current: resp.Current,
		Allowed: resp.Allowed,
	})
}

// GetOrderHistory handles GET /api/v1/orders/:id/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	entries, err := s.orderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, historyToResponse(entries))
}

func actorFromRequest(ctx echo.Context) (actor.Actor, error) {
	rawID := ctx.Request().Header.Get(headerActorID)
	if rawID == "" {
		return actor.Actor{}, errs.NewValueIsRequiredError(headerActorID + " header")
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return actor.Actor{}, errs.NewValueIsInvalidErrorWithCause(headerActorID+" header", err)
	}

	role, err := actor.RoleFromString(ctx.Request().Header.Get(headerActorRole))
	if err != nil {
		return actor.Actor{}, err
	}

	return actor.NewActor(id, role)
}

func orderIDParam(ctx echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("order id", err)
	}
	return id, nil
}

func itemSpecs(reqs []OrderItemRequest) ([]commands.OrderItemSpec, error) {
	specs := make([]commands.OrderItemSpec, 0, len(reqs))
	for _, req := range reqs {
		productID, err := kernel.UUIDFromString(req.ProductID)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("product_id", err)
		}
		specs = append(specs, commands.OrderItemSpec{
			ProductID:     productID,
			Qty:           req.Qty,
			PriceUSDCents: req.PriceUSDCents,
		})
	}
	return specs, nil
}
