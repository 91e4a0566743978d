package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	bookModel "librobuddy-backend/internal/domains/book/model"
	bookRepo "librobuddy-backend/internal/domains/book/repository"
	"librobuddy-backend/internal/domains/order/model"
	"librobuddy-backend/internal/domains/order/repository"
	"librobuddy-backend/internal/shared"
	"librobuddy-backend/internal/shared/utils"
	"librobuddy-backend/pkg/database"
	"librobuddy-backend/pkg/logger"
)

// =====================================================
// ORDER SERVICE IMPLEMENTATION
// =====================================================
type orderService struct {
	db        database.TxBeginner
	orderRepo repository.OrderRepository
	stockRepo bookRepo.StockRepository
}

// NewOrderService creates a new order service
func NewOrderService(
	db database.TxBeginner,
	orderRepo repository.OrderRepository,
	stockRepo bookRepo.StockRepository,
) OrderService {
	return &orderService{
		db:        db,
		orderRepo: orderRepo,
		stockRepo: stockRepo,
	}
}

// =====================================================
// PLACE ORDER
// =====================================================

func (s *orderService) PlaceOrder(ctx context.Context, actor shared.Actor, req model.CreateOrderRequest) (*model.CreateOrderResponse, error) {
	// Step 1: validate the cart before touching any state
	if err := validateCart(req.Items); err != nil {
		return nil, err
	}

	// Step 2: resolve who the order is for and who placed it
	customerID, employeeID, err := resolveParties(actor, req.CustomerID)
	if err != nil {
		return nil, err
	}

	order, err := database.WithTransactionResult(ctx, s.db, func(tx pgx.Tx) (*model.Order, error) {
		// Step 3: lock every referenced book, ordered by id
		books, err := s.stockRepo.LockBooksForUpdateWithTx(ctx, tx, distinctBookIDs(req.Items))
		if err != nil {
			return nil, fmt.Errorf("lock books: %w", err)
		}

		orderID := uuid.New()
		total := decimal.Zero
		items := make([]model.OrderItem, 0, len(req.Items))

		// Step 4: walk the cart in order; remaining stock is tracked on the locked rows
		for i, line := range req.Items {
			book, ok := books[line.BookID]
			if !ok {
				return nil, model.NewItemNotFoundError(line.BookID)
			}

			if line.Quantity > book.StockQuantity {
				return nil, model.NewInsufficientStockError(book.ID, book.Title, book.StockQuantity, line.Quantity)
			}

			if err := s.stockRepo.DecrementStockWithTx(ctx, tx, book.ID, line.Quantity); err != nil {
				if errors.Is(err, bookModel.ErrInsufficientStock) {
					return nil, model.NewInsufficientStockError(book.ID, book.Title, book.StockQuantity, line.Quantity)
				}
				return nil, fmt.Errorf("decrement stock: %w", err)
			}
			book.StockQuantity -= line.Quantity

			bookID := book.ID
			item := model.OrderItem{
				ID:              uuid.New(),
				OrderID:         orderID,
				LineNo:          i + 1,
				BookID:          &bookID,
				BookTitle:       book.Title,
				Quantity:        line.Quantity,
				PriceAtPurchase: book.Price,
			}
			total = total.Add(item.Subtotal())
			items = append(items, item)
		}
		if total.GreaterThan(shared.MaxOrderTotal) {
			return nil, newTotalTooLargeError(total, nil)
		}

		// Step 5: order header; timestamps come from the database clock
		order := &model.Order{
			ID:          orderID,
			UserID:      customerID,
			EmployeeID:  employeeID,
			TotalAmount: total,
			Status:      model.OrderStatusPending,
		}
		if err := s.orderRepo.CreateOrderWithTx(ctx, tx, order); err != nil {
			switch {
			case errors.Is(err, model.ErrCustomerNotFound):
				return nil, model.NewOrderError(model.ErrCodeCustomerNotFound, "customer does not exist", err)
			case errors.Is(err, model.ErrTotalTooLarge):
				return nil, newTotalTooLargeError(total, err)
			}
			return nil, fmt.Errorf("create order: %w", err)
		}

		// Step 6: items with frozen prices
		if err := s.orderRepo.CreateOrderItemsWithTx(ctx, tx, items); err != nil {
			return nil, fmt.Errorf("create order items: %w", err)
		}

		// Step 7: initial status history
		if err := s.orderRepo.CreateStatusHistoryWithTx(ctx, tx, &model.OrderStatusHistory{
			ID:        uuid.New(),
			OrderID:   orderID,
			ToStatus:  model.OrderStatusPending,
			ChangedBy: &actor.UserID,
		}); err != nil {
			return nil, fmt.Errorf("create status history: %w", err)
		}

		return order, nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("order placed", map[string]interface{}{
		"order_id":    order.ID,
		"user_id":     order.UserID,
		"employee_id": order.EmployeeID,
		"total":       order.TotalAmount.String(),
		"items":       len(req.Items),
	})

	return &model.CreateOrderResponse{
		OrderID:     order.ID,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
	}, nil
}

func validateCart(items []model.CartItem) error {
	if len(items) == 0 {
		return model.NewOrderError(model.ErrCodeCartEmpty, "cart is empty", model.ErrCartEmpty)
	}
	for i, item := range items {
		if reason := item.DecodeError(); reason != "" {
			return model.NewInvalidItemError(i, reason)
		}
		if item.BookID == uuid.Nil {
			return model.NewInvalidItemError(i, "book_id is required")
		}
		if item.Quantity <= 0 {
			return model.NewInvalidItemError(i, "quantity must be greater than 0")
		}
		if item.Quantity > shared.MaxQuantity {
			return model.NewInvalidItemError(i, fmt.Sprintf("quantity must be at most %d", shared.MaxQuantity))
		}
	}
	return nil
}

func newTotalTooLargeError(total decimal.Decimal, err error) *model.OrderError {
	if err == nil {
		err = model.ErrTotalTooLarge
	}
	oe := model.NewOrderError(model.ErrCodeTotalTooLarge, "order total exceeds the maximum of "+shared.MaxOrderTotal.StringFixed(shared.MoneyScale), err)
	oe.Details = map[string]interface{}{
		"total": total.StringFixed(shared.MoneyScale),
		"max":   shared.MaxOrderTotal.StringFixed(shared.MoneyScale),
	}
	return oe
}

// resolveParties returns the customer the order belongs to and, for staff, the employee who placed it
func resolveParties(actor shared.Actor, requested *uuid.UUID) (uuid.UUID, *uuid.UUID, error) {
	if actor.IsStaff() {
		employeeID := actor.UserID
		if requested != nil && *requested != uuid.Nil {
			return *requested, &employeeID, nil
		}
		return actor.UserID, &employeeID, nil
	}

	if requested != nil && *requested != actor.UserID {
		return uuid.Nil, nil, model.NewOrderError(model.ErrCodeForbidden, "customers can only order for themselves", model.ErrForbidden)
	}
	return actor.UserID, nil, nil
}

func distinctBookIDs(items []model.CartItem) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.BookID]; ok {
			continue
		}
		seen[item.BookID] = struct{}{}
		ids = append(ids, item.BookID)
	}
	return ids
}

// =====================================================
// STATUS TRANSITION
// =====================================================

func (s *orderService) UpdateOrderStatus(ctx context.Context, actor shared.Actor, orderID uuid.UUID, req model.UpdateOrderStatusRequest) error {
	if !model.IsValidStatus(req.Status) {
		return model.NewOrderError(model.ErrCodeInvalidStatus, fmt.Sprintf("invalid status value %q", req.Status), model.ErrInvalidStatus)
	}

	var previous string
	restocked := 0

	err := database.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		order, err := s.orderRepo.GetOrderForUpdateWithTx(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, model.ErrOrderNotFound) {
				return model.NewOrderError(model.ErrCodeOrderNotFound, "order not found", err)
			}
			return fmt.Errorf("lock order: %w", err)
		}
		previous = order.Status

		if err := authorizeTransition(actor, order, req.Status); err != nil {
			return err
		}

		updatedAt, err := s.orderRepo.UpdateStatusWithTx(ctx, tx, orderID, req.Status)
		if err != nil {
			return fmt.Errorf("update status: %w", err)
		}

		// restock only on the first transition into cancelled
		if req.Status == model.OrderStatusCancelled && previous != model.OrderStatusCancelled {
			items, err := s.orderRepo.GetOrderItemsWithTx(ctx, tx, orderID)
			if err != nil {
				return fmt.Errorf("load order items: %w", err)
			}
			for _, item := range items {
				if item.BookID == nil {
					continue
				}
				if err := s.stockRepo.IncrementStockWithTx(ctx, tx, *item.BookID, item.Quantity); err != nil {
					switch {
					case errors.Is(err, bookModel.ErrBookNotFound):
						continue
					case errors.Is(err, bookModel.ErrValueOutOfRange):
						oe := model.NewOrderError(model.ErrCodeStockLimit, "restock would exceed the stock limit of a book", model.ErrStockLimit)
						oe.Details = map[string]interface{}{"book_id": *item.BookID, "quantity": item.Quantity}
						return oe
					}
					return fmt.Errorf("restock book %s: %w", item.BookID, err)
				}
				restocked += item.Quantity
			}
		}

		if previous == req.Status {
			return nil
		}

		from := previous
		if err := s.orderRepo.CreateStatusHistoryWithTx(ctx, tx, &model.OrderStatusHistory{
			ID:         uuid.New(),
			OrderID:    orderID,
			FromStatus: &from,
			ToStatus:   req.Status,
			ChangedBy:  &actor.UserID,
			ChangedAt:  updatedAt,
		}); err != nil {
			return fmt.Errorf("create status history: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("order status updated", map[string]interface{}{
		"order_id":  orderID,
		"from":      previous,
		"to":        req.Status,
		"actor":     actor.UserID,
		"restocked": restocked,
	})
	return nil
}

// authorizeTransition: staff may set any status; a customer may only cancel their own order
func authorizeTransition(actor shared.Actor, order *model.Order, target string) error {
	if actor.IsStaff() {
		return nil
	}

	if order.UserID != actor.UserID {
		return model.NewOrderError(model.ErrCodeOrderNotFound, "order not found", model.ErrOrderNotFound)
	}
	if target != model.OrderStatusCancelled {
		return model.NewOrderError(model.ErrCodeForbidden, "customers may only cancel orders", model.ErrForbidden)
	}
	if order.Status != model.OrderStatusCancelled && !model.CustomerCancellable(order.Status) {
		return model.NewOrderError(model.ErrCodeForbidden, "order can no longer be cancelled", model.ErrForbidden)
	}
	return nil
}

// =====================================================
// READ SIDE
// =====================================================

func (s *orderService) GetOrderDetail(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*model.OrderDetailResponse, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			return nil, model.NewOrderError(model.ErrCodeOrderNotFound, "order not found", err)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	if !actor.IsStaff() && order.UserID != actor.UserID {
		return nil, model.NewOrderError(model.ErrCodeOrderNotFound, "order not found", model.ErrOrderNotFound)
	}

	items, err := s.orderRepo.GetOrderItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}

	history, err := s.orderRepo.GetStatusHistory(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get status history: %w", err)
	}

	return &model.OrderDetailResponse{
		Order:   *order,
		Items:   items,
		History: history,
	}, nil
}

func (s *orderService) ListOrders(ctx context.Context, actor shared.Actor, req model.ListOrdersRequest) (*model.ListOrdersResponse, error) {
	if req.Status != "" && !model.IsValidStatus(req.Status) {
		return nil, model.NewOrderError(model.ErrCodeInvalidStatus, "invalid status value", model.ErrInvalidStatus)
	}
	// paging errors are plain validation errors
	if err := req.Validate(); err != nil {
		return nil, err
	}

	page, limit := utils.NormalizePage(req.Page, req.Limit)
	filter := model.OrderFilter{Status: req.Status, Page: page, Limit: limit}
	if !actor.IsStaff() {
		userID := actor.UserID
		filter.UserID = &userID
	}

	orders, total, err := s.orderRepo.ListOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return &model.ListOrdersResponse{
		Orders: orders,
		Total:  total,
		Page:   page,
		Limit:  limit,
	}, nil
}
