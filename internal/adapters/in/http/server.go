// Package http exposes the order lifecycle over a JSON API. Handlers
// translate requests into commands and queries and map domain errors onto
// HTTP status codes; no business rules live here.
package http

import (
	"errors"
	"net/http"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/settlement"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	appendDetailHandler    commands.AppendOrderDetailCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler
	claimOrderHandler      commands.ClaimOrderCommandHandler
	settleOrderHandler     commands.SettleOrderCommandHandler

	// Query handlers
	getReadyOrdersHandler queries.GetReadyOrdersQueryHandler
	getOrderHandler       queries.GetOrderQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	appendDetailHandler commands.AppendOrderDetailCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	claimOrderHandler commands.ClaimOrderCommandHandler,
	settleOrderHandler commands.SettleOrderCommandHandler,
	getReadyOrdersHandler queries.GetReadyOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		appendDetailHandler:    appendDetailHandler,
		transitionOrderHandler: transitionOrderHandler,
		claimOrderHandler:      claimOrderHandler,
		settleOrderHandler:     settleOrderHandler,
		getReadyOrdersHandler:  getReadyOrdersHandler,
		getOrderHandler:        getOrderHandler,
	}
}

// RegisterRoutes mounts the API under /api/v1 with token authentication.
// The health endpoint stays outside the authenticated group.
func (s *Server) RegisterRoutes(e *echo.Echo, authSecret []byte) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1", AuthMiddleware(authSecret))
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/details", s.AppendOrderDetail)
	api.GET("/orders/ready", s.GetReadyOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/transition", s.TransitionOrder)
	api.POST("/orders/:id/claim", s.ClaimOrder)
	api.POST("/orders/:id/settle", s.SettleOrder)
}

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderRequest is the body of POST /orders.
type NewOrderRequest struct {
	OrderType string           `json:"orderType"`
	Details   []NewOrderDetail `json:"details"`
}

// NewOrderDetail is one detail line of an order creation request.
// UnitPrice is in minor currency units.
type NewOrderDetail struct {
	ProductID        string                    `json:"productId"`
	UnitPrice        int64                     `json:"unitPrice"`
	Quantity         int                       `json:"quantity"`
	Personalizations []NewOrderPersonalization `json:"personalizations,omitempty"`
}

// NewOrderPersonalization is an ingredient adjustment on a detail line.
type NewOrderPersonalization struct {
	Ingredient string `json:"ingredient"`
	Excluded   bool   `json:"excluded"`
	Mandatory  bool   `json:"mandatory"`
}

// NewOrderResponse returns the identifier assigned to a created order.
type NewOrderResponse struct {
	ID string `json:"id"`
}

// TransitionRequest is the body of POST /orders/:id/transition.
type TransitionRequest struct {
	Expected string `json:"expected"`
	Target   string `json:"target"`
}

// SettleRequest is the body of POST /orders/:id/settle.
// Amount is in minor currency units.
type SettleRequest struct {
	Amount int64       `json:"amount"`
	Method string      `json:"method"`
	Tip    *TipRequest `json:"tip,omitempty"`
}

// TipRequest is the optional tip of a settle request.
type TipRequest struct {
	Amount     int64 `json:"amount"`
	Percentage *int  `json:"percentage,omitempty"`
}

// ReadyOrderResponse is one entry of GET /orders/ready.
type ReadyOrderResponse struct {
	ID        string `json:"id"`
	SellerID  string `json:"sellerId"`
	Total     int64  `json:"total"`
	CreatedAt string `json:"createdAt"`
}

// OrderResponse is the body of GET /orders/:id.
type OrderResponse struct {
	ID              string                `json:"id"`
	SellerID        string                `json:"sellerId"`
	OrderType       string                `json:"orderType"`
	Status          string                `json:"status"`
	DeliveryAgentID *string               `json:"deliveryAgentId,omitempty"`
	Total           int64                 `json:"total"`
	CreatedAt       string                `json:"createdAt"`
	Details         []OrderDetailResponse `json:"details"`
}

// OrderDetailResponse is one detail line of an order view.
type OrderDetailResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// CreateOrder handles POST /api/v1/orders. The authenticated actor becomes
// the order's seller.
func (s *Server) CreateOrder(ctx echo.Context) error {
	act, err := actorFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, err.Error())
	}

	var req NewOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderType, err := order.OrderTypeFromString(req.OrderType)
	if err != nil {
		return badRequest(ctx, "invalid order type: "+req.OrderType)
	}

	details, err := detailInputs(req.Details)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, act.UserID(), orderType, details)
	if err != nil {
		return badRequest(ctx, "invalid order data: "+err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, NewOrderResponse{ID: orderID.String()})
}

// AppendOrderDetail handles POST /api/v1/orders/:id/details. Line items can
// only be added while the order is still Taken.
func (s *Server) AppendOrderDetail(ctx echo.Context) error {
	act, err := actorFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order ID")
	}

	var req NewOrderDetail
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	details, err := detailInputs([]NewOrderDetail{req})
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAppendOrderDetailCommand(orderID, act, details[0])
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.appendDetailHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TransitionOrder handles POST /api/v1/orders/:id/transition.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	act, err := actorFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order ID")
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	expected, err := order.StatusFromString(req.Expected)
	if err != nil {
		return badRequest(ctx, "invalid expected status: "+req.Expected)
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return badRequest(ctx, "invalid target status: "+req.Target)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, act, expected, target)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ClaimOrder handles POST /api/v1/orders/:id/claim. The authenticated actor
// is the claiming delivery agent.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	act, err := actorFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order ID")
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, act)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.claimOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, ports.ErrConcurrencyConflict) {
			return ctx.JSON(http.StatusConflict, ErrorResponse{
				Code:    http.StatusConflict,
				Message: "order already taken",
			})
		}
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SettleOrder handles POST /api/v1/orders/:id/settle.
func (s *Server) SettleOrder(ctx echo.Context) error {
	act, err := actorFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order ID")
	}

	var req SettleRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	method, err := settlement.MethodFromString(req.Method)
	if err != nil {
		return badRequest(ctx, "invalid payment method: "+req.Method)
	}

	var tip *commands.TipInput
	if req.Tip != nil {
		tip = &commands.TipInput{Amount: req.Tip.Amount, Percentage: req.Tip.Percentage}
	}

	cmd, err := commands.NewSettleOrderCommand(orderID, act, req.Amount, method, tip)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.settleOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetReadyOrders handles GET /api/v1/orders/ready?type=.
func (s *Server) GetReadyOrders(ctx echo.Context) error {
	orderType, err := order.OrderTypeFromString(ctx.QueryParam("type"))
	if err != nil {
		return badRequest(ctx, "invalid order type: "+ctx.QueryParam("type"))
	}

	query, err := queries.NewGetReadyOrdersQuery(orderType)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orders, err := s.getReadyOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "failed to retrieve ready orders")
	}

	response := make([]ReadyOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = ReadyOrderResponse{
			ID:        o.ID.String(),
			SellerID:  o.SellerID.String(),
			Total:     o.Total,
			CreatedAt: o.CreatedAt.UTC().Format(time.RFC3339),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order ID")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	details := make([]OrderDetailResponse, len(resp.Details))
	for i, d := range resp.Details {
		details[i] = OrderDetailResponse{
			ID:        d.ID.String(),
			ProductID: d.ProductID.String(),
			UnitPrice: d.UnitPrice,
			Quantity:  d.Quantity,
			Subtotal:  d.Subtotal,
		}
	}

	var agentID *string
	if resp.DeliveryAgentID != nil {
		id := resp.DeliveryAgentID.String()
		agentID = &id
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		ID:              resp.ID.String(),
		SellerID:        resp.SellerID.String(),
		OrderType:       resp.OrderType,
		Status:          resp.Status,
		DeliveryAgentID: agentID,
		Total:           resp.Total,
		CreatedAt:       resp.CreatedAt.UTC().Format(time.RFC3339),
		Details:         details,
	})
}

func detailInputs(reqDetails []NewOrderDetail) ([]commands.DetailInput, error) {
	details := make([]commands.DetailInput, 0, len(reqDetails))
	for _, d := range reqDetails {
		productID, err := kernel.UUIDFromString(d.ProductID)
		if err != nil {
			return nil, errors.New("invalid product ID: " + d.ProductID)
		}

		personalizations := make([]commands.PersonalizationInput, 0, len(d.Personalizations))
		for _, p := range d.Personalizations {
			personalizations = append(personalizations, commands.PersonalizationInput{
				Ingredient: p.Ingredient,
				Excluded:   p.Excluded,
				Mandatory:  p.Mandatory,
			})
		}

		details = append(details, commands.DetailInput{
			ProductID:        productID,
			UnitPrice:        d.UnitPrice,
			Quantity:         d.Quantity,
			Personalizations: personalizations,
		})
	}

	return details, nil
}

// domainError maps domain and port errors onto HTTP status codes.
func domainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return jsonError(ctx, http.StatusNotFound, "order not found")
	case errors.Is(err, order.ErrForbidden):
		return jsonError(ctx, http.StatusForbidden, "actor is not allowed to perform this operation")
	case errors.Is(err, settlement.ErrAlreadySettled):
		return jsonError(ctx, http.StatusConflict, "order is already paid")
	case errors.Is(err, ports.ErrConcurrencyConflict):
		return jsonError(ctx, http.StatusConflict, "order was modified concurrently, refresh and retry")
	case errors.Is(err, order.ErrDetailsAreSealed):
		return jsonError(ctx, http.StatusConflict, "details can no longer be added to this order")
	case errors.Is(err, order.ErrInvalidTransition):
		return jsonError(ctx, http.StatusUnprocessableEntity, "transition is not allowed from the current status")
	default:
		return badRequest(ctx, err.Error())
	}
}

func jsonError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return jsonError(ctx, http.StatusBadRequest, message)
}

func internalError(ctx echo.Context, message string) error {
	return jsonError(ctx, http.StatusInternalServerError, message)
}
