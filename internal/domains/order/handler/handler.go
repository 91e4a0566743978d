package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"librobuddy-backend/internal/domains/order/model"
	"librobuddy-backend/internal/domains/order/service"
	"librobuddy-backend/internal/shared/middleware"
	"librobuddy-backend/internal/shared/response"
)

// =====================================================
// ORDER HANDLER
// =====================================================
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// =====================================================
// ROUTES REGISTRATION
// =====================================================

// RegisterRoutes registers all order routes. The group must already carry AuthMiddleware.
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/orders")
	{
		orders.POST("", h.CreateOrder)                 // POST /v1/orders
		orders.GET("", h.ListOrders)                   // GET /v1/orders?page=1&limit=20&status=pending
		orders.GET("/:id", h.GetOrderDetail)           // GET /v1/orders/:id
		orders.PUT("/:id/status", h.UpdateOrderStatus) // PUT /v1/orders/:id/status
	}
}

// =====================================================
// CREATE ORDER
// =====================================================

// CreateOrder - POST /v1/orders
// Customers order for themselves; staff may pass customer_id to order on someone's behalf.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	// lines with an undecodable book_id or quantity still bind and are rejected as ORD004
	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.orderService.PlaceOrder(c.Request.Context(), actor, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Location", "/api/v1/orders/"+result.OrderID.String())
	response.Success(c, http.StatusCreated, result)
}

// =====================================================
// GET ORDER DETAIL
// =====================================================

// GetOrderDetail - GET /v1/orders/:id
func (h *OrderHandler) GetOrderDetail(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	result, err := h.orderService.GetOrderDetail(c.Request.Context(), actor, orderID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// =====================================================
// LIST ORDERS
// =====================================================

// ListOrders - GET /v1/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), actor, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Orders, response.NewMeta(result.Page, result.Limit, result.Total))
}

// =====================================================
// UPDATE ORDER STATUS
// =====================================================

// UpdateOrderStatus - PUT /v1/orders/:id/status
// Staff may set any status. Customers may only cancel their own pending or processing orders.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	var req model.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.orderService.UpdateOrderStatus(c.Request.Context(), actor, orderID, req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"order_id": orderID,
		"status":   req.Status,
	})
}

// =====================================================
// HELPER METHODS
// =====================================================

func parseOrderID(c *gin.Context) (uuid.UUID, bool) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Order ID must be a valid UUID")
		return uuid.Nil, false
	}
	return orderID, true
}

// handleServiceError maps service errors to HTTP responses
func (h *OrderHandler) handleServiceError(c *gin.Context, err error) {
	var orderErr *model.OrderError
	if errors.As(err, &orderErr) {
		statusCode := getHTTPStatusFromErrorCode(orderErr.Code)
		if len(orderErr.Details) > 0 {
			response.ErrorWithDetails(c, statusCode, orderErr.Code, orderErr.Message, orderErr.Details)
			return
		}
		response.ErrorResponse(c, statusCode, orderErr.Code, orderErr.Message)
		return
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ValidationError(c, verrs)
		return
	}

	if errors.Is(err, model.ErrOrderNotFound) {
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeOrderNotFound, "Order not found")
		return
	}

	log.Error().Err(err).
		Str("request_id", c.GetString(middleware.ContextKeyRequestID)).
		Msg("order request failed")
	response.InternalServerError(c, "Internal server error")
}

// getHTTPStatusFromErrorCode maps business error codes to HTTP status codes
func getHTTPStatusFromErrorCode(code string) int {
	statusMap := map[string]int{
		model.ErrCodeOrderNotFound:     http.StatusNotFound,
		model.ErrCodeItemNotFound:      http.StatusNotFound,
		model.ErrCodeInsufficientStock: http.StatusConflict,
		model.ErrCodeInvalidItem:       http.StatusBadRequest,
		model.ErrCodeCartEmpty:         http.StatusBadRequest,
		model.ErrCodeInvalidStatus:     http.StatusBadRequest,
		model.ErrCodeForbidden:         http.StatusForbidden,
		model.ErrCodeCustomerNotFound:  http.StatusNotFound,
		model.ErrCodeTotalTooLarge:     http.StatusBadRequest,
		model.ErrCodeStockLimit:        http.StatusConflict,
	}

	if status, exists := statusMap[code]; exists {
		return status
	}

	return http.StatusInternalServerError
}
