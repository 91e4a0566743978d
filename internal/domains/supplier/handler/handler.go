package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"librobuddy-backend/internal/domains/supplier/model"
	"librobuddy-backend/internal/domains/supplier/service"
	"librobuddy-backend/internal/shared/middleware"
	"librobuddy-backend/internal/shared/response"
)

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the staff-only supplier routes; the group must carry AuthMiddleware and StaffOnly
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/suppliers", h.CreateSupplier)
	router.GET("/suppliers", h.ListSuppliers)

	orders := router.Group("/supplier-orders")
	{
		orders.POST("", h.CreateSupplierOrder)
		orders.GET("", h.ListSupplierOrders)
		orders.GET("/:id", h.GetSupplierOrder)
		orders.PUT("/:id/status", h.UpdateSupplierOrderStatus)
	}
}

// ==================== SUPPLIERS ====================

// CreateSupplier - POST /v1/suppliers
func (h *Handler) CreateSupplier(c *gin.Context) {
	var req model.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	supplier, err := h.svc.CreateSupplier(c.Request.Context(), req)
	if model.HandleSupplierError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, supplier)
}

// ListSuppliers - GET /v1/suppliers
func (h *Handler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.svc.ListSuppliers(c.Request.Context())
	if model.HandleSupplierError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, suppliers)
}

// ==================== SUPPLIER ORDERS ====================

// CreateSupplierOrder - POST /v1/supplier-orders
func (h *Handler) CreateSupplierOrder(c *gin.Context) {
	var req model.CreateSupplierOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.svc.CreateSupplierOrder(c.Request.Context(), req)
	if model.HandleSupplierError(c, err) {
		return
	}

	c.Header("Location", "/api/v1/supplier-orders/"+order.ID.String())
	response.Success(c, http.StatusCreated, order)
}

// ListSupplierOrders - GET /v1/supplier-orders?status=Pending&supplier_id=...&page=1&limit=20
func (h *Handler) ListSupplierOrders(c *gin.Context) {
	var req model.ListSupplierOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.svc.ListSupplierOrders(c.Request.Context(), req)
	if model.HandleSupplierError(c, err) {
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Orders, response.NewMeta(result.Page, result.Limit, result.Total))
}

// GetSupplierOrder - GET /v1/supplier-orders/:id
func (h *Handler) GetSupplierOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	order, err := h.svc.GetSupplierOrder(c.Request.Context(), id)
	if model.HandleSupplierError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, order)
}

// UpdateSupplierOrderStatus - PUT /v1/supplier-orders/:id/status
// Moving to Received credits the book's stock the first time.
func (h *Handler) UpdateSupplierOrderStatus(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateSupplierOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.svc.UpdateSupplierOrderStatus(c.Request.Context(), actor.UserID, id, req)
	if model.HandleSupplierError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, order)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid supplier order ID")
		return uuid.Nil, false
	}
	return id, true
}
