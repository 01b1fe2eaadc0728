package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/order"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handler is a use case that returns a result.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// VoidHandler is a use case that only reports failure.
type VoidHandler[In any] interface {
	Handle(ctx context.Context, in In) error
}

// StatusChanger moves an order to a new status and returns the history entry
// it recorded.
type StatusChanger interface {
	Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, order.WorkflowEntry, error)
}

// Handlers are the use cases the HTTP adapter exposes.
type Handlers struct {
	// Command handlers
	CreateOrder    Handler[commands.CreateOrderCommand, commands.CreateOrderResult]
	UpdateOrder    Handler[commands.UpdateOrderCommand, *order.Order]
	ChangeStatus   StatusChanger
	DeleteOrder    VoidHandler[commands.DeleteOrderCommand]
	AddComment     Handler[commands.AddCommentCommand, *order.Comment]
	UpdateComment  Handler[commands.UpdateCommentCommand, *order.Comment]
	DeleteComment  VoidHandler[commands.DeleteCommentCommand]
	UploadDocument Handler[commands.UploadDocumentCommand, *order.Document]
	UpdateDocument Handler[commands.UpdateDocumentCommand, *order.Document]
	DeleteDocument VoidHandler[commands.DeleteDocumentCommand]

	// Query handlers
	GetOrder          Handler[queries.GetOrderQuery, queries.OrderDetail]
	ListOrders        Handler[queries.ListOrdersQuery, []queries.OrderSummary]
	GetOrderHistory   Handler[queries.GetOrderHistoryQuery, []queries.HistoryEntryView]
	ListComments      Handler[queries.ListOrderCommentsQuery, []queries.CommentView]
	ListDocuments     Handler[queries.ListOrderDocumentsQuery, []queries.DocumentView]
	DocumentContent   Handler[queries.GetDocumentContentQuery, queries.DocumentContent]
	ListOrderStatuses Handler[queries.ListOrderStatusesQuery, []queries.OrderStatusView]
	ListOrderTypes    Handler[queries.ListOrderTypesQuery, []queries.OrderTypeView]
	SearchItems       Handler[queries.SearchOrderItemsQuery, []queries.ItemSearchResult]
}

// Server translates HTTP requests into commands and queries. The caller's
// principal is put into the echo context by the Authenticator; every handler
// passes it on explicitly.
type Server struct {
	h        Handlers
	validate *validator.Validate
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		h:        handlers,
		validate: validator.New(),
		logger:   logger.With("component", "http_server"),
	}
}

// bind decodes the body into req and validates its shape.
func (s *Server) bind(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return errors.New("invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func pathID(ctx echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err.Error())
	}

	var req createOrderRequest
	if err = s.bind(ctx, &req); err != nil {
		return badRequest(ctx, err.Error())
	}

	details, items, err := req.toDomain()
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewCreateOrderCommand(principal, details, items)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	result, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	resp := newOrderResponse(result.Order)
	resp.Warnings = result.Warnings
	return ctx.JSON(http.StatusCreated, resp)
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err.Error())
	}

	filter := queries.ListOrdersFilter{StatusCode: ctx.QueryParam("status")}
	if raw := ctx.QueryParam("requester_id"); raw != "" {
		requesterID, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			return badRequest(ctx, "Invalid requester_id")
		}
		filter.RequesterID = &requesterID
	}
	if filter.Limit, err = intQueryParam(ctx, "limit"); err != nil {
		return badRequest(ctx, "Invalid limit")
	}
	if filter.Offset, err = intQueryParam(ctx, "offset"); err != nil {
		return badRequest(ctx, "Invalid offset")
	}

	query, err := queries.NewListOrdersQuery(principal, filter)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	orders, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, newOrderSummaries(orders))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err.Error())
	}
	orderID, ok := pathID(ctx, "id")
	if !ok {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(principal, orderID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	detail, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, newOrderDetailResponse(detail))
}

// UpdateOrder handles PUT /api/v1/orders/:id.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err.Error())
	}
	orderID, ok := pathID(ctx, "id")
	if !ok {
		return badRequest(ctx, "Invalid order id")
	}

	var req updateOrderRequest
	if err = s.bind(ctx, &req); err != nil {
		return badRequest(ctx, err.Error())
	}

	patch, err := req.toPatch()
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewUpdateOrderCommand(principal, orderID, patch)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	updated, err := s.h.UpdateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, newOrderResponse(updated))
}

// DeleteOrder handles DELETE /api/v1/orders/:id.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err.Error())
	}
	orderID, ok := pathID(ctx, "id")
	if !ok {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewDeleteOrderCommand(principal, orderID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	if err = s.h.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status/:status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err.Error())
	}
	orderID, ok := pathID(ctx, "id")
	if !ok {
		return badRequest(ctx, "Invalid order id")
	}

	var req changeStatusRequest
	if err = s.bind(ctx, &req); err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewChangeOrderStatusCommand(principal, orderID, ctx.Param("status"), req.Comments)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	updated, entry, err := s.h.ChangeStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, newStatusChangeResponse(updated, entry))
}

// GetOrderHistory handles GET /api/v1/orders/:id/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err.Error())
	}
	orderID, ok := pathID(ctx, "id")
	if !ok {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderHistoryQuery(principal, orderID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	history, err := s.h.GetOrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, newHistoryViews(history))
}

// ListOrderStatuses handles GET /api/v1/order-statuses.
func (s *Server) ListOrderStatuses(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err.Error())
	}

	query, err := queries.NewListOrderStatusesQuery(principal)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	statuses, err := s.h.ListOrderStatuses.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	response := make([]orderStatusResponse, len(statuses))
	for i, st := range statuses {
		response[i] = orderStatusResponse{
			ID:       st.ID,
			Code:     st.Code,
			Name:     st.Name,
			NameKa:   st.NameKa,
			Color:    st.Color,
			OrderSeq: st.OrderSeq,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ListOrderTypes handles GET /api/v1/order-types.
func (s *Server) ListOrderTypes(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err.Error())
	}

	query, err := queries.NewListOrderTypesQuery(principal)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	types, err := s.h.ListOrderTypes.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	response := make([]orderTypeResponse, len(types))
	for i, t := range types {
		response[i] = orderTypeResponse{
			ID:               t.ID,
			Code:             t.Code,
			Name:             t.Name,
			NameKa:           t.NameKa,
			RequiresApproval: t.RequiresApproval,
			ApprovalLevels:   t.ApprovalLevels,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// SearchOrderItems handles GET /api/v1/order-items/search?q=.
func (s *Server) SearchOrderItems(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err.Error())
	}

	query, err := queries.NewSearchOrderItemsQuery(principal, ctx.QueryParam("q"))
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	items, err := s.h.SearchItems.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	response := make([]itemSearchResponse, len(items))
	for i, item := range items {
		response[i] = itemSearchResponse{
			ID:          item.ID,
			OrderID:     item.OrderID,
			OrderNumber: item.OrderNumber,
			Name:        item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
			CreatedAt:   item.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func intQueryParam(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
