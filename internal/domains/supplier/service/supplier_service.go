package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	bookModel "librobuddy-backend/internal/domains/book/model"
	bookRepo "librobuddy-backend/internal/domains/book/repository"
	"librobuddy-backend/internal/domains/supplier/model"
	"librobuddy-backend/internal/domains/supplier/repository"
	"librobuddy-backend/internal/shared/utils"
	"librobuddy-backend/pkg/database"
	"librobuddy-backend/pkg/logger"
)

type supplierService struct {
	db        database.TxBeginner
	repo      repository.Repository
	stockRepo bookRepo.StockRepository
}

func NewService(db database.TxBeginner, repo repository.Repository, stockRepo bookRepo.StockRepository) Service {
	return &supplierService{db: db, repo: repo, stockRepo: stockRepo}
}

func (s *supplierService) CreateSupplier(ctx context.Context, req model.CreateSupplierRequest) (*model.Supplier, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	supplier := &model.Supplier{
		ID:           uuid.New(),
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.CreateSupplier(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *supplierService) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	return s.repo.ListSuppliers(ctx)
}

func (s *supplierService) CreateSupplierOrder(ctx context.Context, req model.CreateSupplierOrderRequest) (*model.SupplierOrder, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	expected, err := req.ExpectedDate()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &model.SupplierOrder{
		ID:                   uuid.New(),
		SupplierID:           req.SupplierID,
		BookID:               req.BookID,
		Quantity:             req.Quantity,
		Status:               model.StatusPending,
		ExpectedDeliveryDate: expected,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.repo.CreateSupplierOrder(ctx, order); err != nil {
		return nil, err
	}

	logger.Info("supplier order created", map[string]interface{}{
		"supplier_order_id": order.ID,
		"supplier_id":       order.SupplierID,
		"book_id":           order.BookID,
		"quantity":          order.Quantity,
	})
	return order, nil
}

func (s *supplierService) GetSupplierOrder(ctx context.Context, id uuid.UUID) (*model.SupplierOrder, error) {
	return s.repo.GetSupplierOrderByID(ctx, id)
}

func (s *supplierService) ListSupplierOrders(ctx context.Context, req model.ListSupplierOrdersRequest) (*model.ListSupplierOrdersResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	page, limit := utils.NormalizePage(req.Page, req.Limit)
	filter := model.ListSupplierOrderFilter{Status: req.Status, Page: page, Limit: limit}
	if req.SupplierID != "" {
		id, err := uuid.Parse(req.SupplierID)
		if err != nil {
			return nil, err
		}
		filter.SupplierID = &id
	}

	orders, total, err := s.repo.ListSupplierOrders(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &model.ListSupplierOrdersResponse{Orders: orders, Total: total, Page: page, Limit: limit}, nil
}

func (s *supplierService) UpdateSupplierOrderStatus(ctx context.Context, changedBy uuid.UUID, id uuid.UUID, req model.UpdateSupplierOrderStatusRequest) (*model.SupplierOrder, error) {
	if !model.IsValidStatus(req.Status) {
		return nil, model.ErrInvalidStatus
	}

	var previous string
	credited := false

	order, err := database.WithTransactionResult(ctx, s.db, func(tx pgx.Tx) (*model.SupplierOrder, error) {
		order, err := s.repo.GetSupplierOrderForUpdateWithTx(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		previous = order.Status

		// stock is credited once per supplier order, on its first arrival at Received
		var receivedAt *time.Time
		if req.Status == model.StatusReceived && previous != model.StatusReceived && !order.Credited() {
			now := time.Now()
			receivedAt = &now

			if err := s.stockRepo.IncrementStockWithTx(ctx, tx, order.BookID, order.Quantity); err != nil {
				switch {
				case errors.Is(err, bookModel.ErrBookNotFound):
					return nil, model.ErrBookNotFound
				case errors.Is(err, bookModel.ErrValueOutOfRange):
					return nil, model.ErrStockLimitExceeded
				}
				return nil, fmt.Errorf("credit stock: %w", err)
			}
			credited = true
		}

		updatedAt, err := s.repo.UpdateSupplierOrderStatusWithTx(ctx, tx, id, req.Status, receivedAt)
		if err != nil {
			return nil, err
		}

		order.Status = req.Status
		order.UpdatedAt = updatedAt
		if order.ReceivedAt == nil {
			order.ReceivedAt = receivedAt
		}
		return order, nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("supplier order status updated", map[string]interface{}{
		"supplier_order_id": id,
		"from":              previous,
		"to":                req.Status,
		"changed_by":        changedBy,
		"stock_credited":    credited,
	})
	return order, nil
}
