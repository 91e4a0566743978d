package service

import (
	"context"

	"github.com/google/uuid"

	"librobuddy-backend/internal/domains/supplier/model"
)

type Service interface {
	CreateSupplier(ctx context.Context, req model.CreateSupplierRequest) (*model.Supplier, error)
	ListSuppliers(ctx context.Context) ([]model.Supplier, error)

	CreateSupplierOrder(ctx context.Context, req model.CreateSupplierOrderRequest) (*model.SupplierOrder, error)
	GetSupplierOrder(ctx context.Context, id uuid.UUID) (*model.SupplierOrder, error)
	ListSupplierOrders(ctx context.Context, req model.ListSupplierOrdersRequest) (*model.ListSupplierOrdersResponse, error)

	// UpdateSupplierOrderStatus credits book stock the first time an order reaches Received
	UpdateSupplierOrderStatus(ctx context.Context, changedBy uuid.UUID, id uuid.UUID, req model.UpdateSupplierOrderStatusRequest) (*model.SupplierOrder, error)
}
