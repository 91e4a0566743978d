package service

import (
	"context"

	"github.com/google/uuid"

	"librobuddy-backend/internal/domains/order/model"
	"librobuddy-backend/internal/shared"
)

// =====================================================
// ORDER SERVICE INTERFACE
// =====================================================
type OrderService interface {
	// PlaceOrder reserves stock and records the order in one transaction
	PlaceOrder(ctx context.Context, actor shared.Actor, req model.CreateOrderRequest) (*model.CreateOrderResponse, error)

	// UpdateOrderStatus moves an order to a new status; cancellation restocks exactly once
	UpdateOrderStatus(ctx context.Context, actor shared.Actor, orderID uuid.UUID, req model.UpdateOrderStatusRequest) error

	GetOrderDetail(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*model.OrderDetailResponse, error)

	ListOrders(ctx context.Context, actor shared.Actor, req model.ListOrdersRequest) (*model.ListOrdersResponse, error)
}
