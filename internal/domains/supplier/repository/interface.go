package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"librobuddy-backend/internal/domains/supplier/model"
)

type Repository interface {
	// Suppliers
	CreateSupplier(ctx context.Context, s *model.Supplier) error
	ListSuppliers(ctx context.Context) ([]model.Supplier, error)

	// Supplier orders
	CreateSupplierOrder(ctx context.Context, o *model.SupplierOrder) error
	GetSupplierOrderByID(ctx context.Context, id uuid.UUID) (*model.SupplierOrder, error)
	ListSupplierOrders(ctx context.Context, filter model.ListSupplierOrderFilter) ([]model.SupplierOrder, int, error)

	// Receipt, inside the caller's transaction
	GetSupplierOrderForUpdateWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.SupplierOrder, error)
	UpdateSupplierOrderStatusWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status string, receivedAt *time.Time) (time.Time, error)
}
