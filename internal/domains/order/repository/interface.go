package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"librobuddy-backend/internal/domains/order/model"
)

// OrderRepository - data access for orders, items and status history.
// *WithTx methods run inside the caller's transaction.
type OrderRepository interface {
	// Placement
	CreateOrderWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error
	CreateOrderItemsWithTx(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error
	CreateStatusHistoryWithTx(ctx context.Context, tx pgx.Tx, history *model.OrderStatusHistory) error

	// Status transition
	GetOrderForUpdateWithTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) (*model.Order, error)
	UpdateStatusWithTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, status string) (time.Time, error)
	GetOrderItemsWithTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) ([]model.OrderItem, error)

	// Read side
	GetOrderByID(ctx context.Context, orderID uuid.UUID) (*model.Order, error)
	GetOrderItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error)
	GetStatusHistory(ctx context.Context, orderID uuid.UUID) ([]model.OrderStatusHistory, error)
	ListOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, int, error)
}
