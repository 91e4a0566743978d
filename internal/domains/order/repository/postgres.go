package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"librobuddy-backend/internal/domains/order/model"
	"librobuddy-backend/internal/infrastructure/database"
	"librobuddy-backend/internal/shared/utils"
)

var orderColumns = []string{"id", "user_id", "employee_id", "total_amount", "status", "created_at", "updated_at"}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================
type postgresOrderRepository struct {
	pool *pgxpool.Pool
	qb   sq.StatementBuilderType
}

func NewPostgresOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &postgresOrderRepository{
		pool: pool,
		qb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.UserID, &o.EmployeeID, &o.TotalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	return &o, nil
}

// =====================================================
// PLACEMENT
// =====================================================

// CreateOrderWithTx inserts the order header; created_at and updated_at are set by the database
func (r *postgresOrderRepository) CreateOrderWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, user_id, employee_id, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		order.ID, order.UserID, order.EmployeeID, order.TotalAmount, order.Status,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		switch {
		case database.IsConstraint(err, "orders_user_id_fkey"):
			return model.ErrCustomerNotFound
		case database.IsValueOutOfRange(err):
			return model.ErrTotalTooLarge
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *postgresOrderRepository) CreateOrderItemsWithTx(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	insert := r.qb.Insert("order_items").Columns("id", "order_id", "line_no", "book_id", "quantity", "price_at_purchase")
	for _, item := range items {
		insert = insert.Values(item.ID, item.OrderID, item.LineNo, item.BookID, item.Quantity, item.PriceAtPurchase)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build order items insert: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		if database.IsConstraint(err, "order_items_book_id_fkey") {
			return model.ErrItemNotFound
		}
		return fmt.Errorf("insert order items: %w", err)
	}
	return nil
}

// CreateStatusHistoryWithTx stamps changed_at with the database clock, the same clock as orders.updated_at
func (r *postgresOrderRepository) CreateStatusHistoryWithTx(ctx context.Context, tx pgx.Tx, h *model.OrderStatusHistory) error {
	query := `
		INSERT INTO order_status_history (id, order_id, from_status, to_status, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING changed_at
	`

	if err := tx.QueryRow(ctx, query, h.ID, h.OrderID, h.FromStatus, h.ToStatus, h.ChangedBy).Scan(&h.ChangedAt); err != nil {
		return fmt.Errorf("insert status history: %w", err)
	}
	return nil
}

// =====================================================
// STATUS TRANSITION
// =====================================================

func (r *postgresOrderRepository) GetOrderForUpdateWithTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) (*model.Order, error) {
	query, args, err := r.qb.Select(orderColumns...).
		From("orders").
		Where("id = ?", orderID).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lock order: %w", err)
	}
	return scanOrder(tx.QueryRow(ctx, query, args...))
}

func (r *postgresOrderRepository) UpdateStatusWithTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, status string) (time.Time, error) {
	var updatedAt time.Time
	err := tx.QueryRow(ctx,
		`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING updated_at`,
		orderID, status,
	).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, model.ErrOrderNotFound
		}
		if database.IsConstraint(err, "orders_status_check") {
			return time.Time{}, model.ErrInvalidStatus
		}
		return time.Time{}, fmt.Errorf("update order status: %w", err)
	}
	return updatedAt, nil
}

func (r *postgresOrderRepository) GetOrderItemsWithTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) ([]model.OrderItem, error) {
	return r.getOrderItems(ctx, tx, orderID)
}

// =====================================================
// READ SIDE
// =====================================================

func (r *postgresOrderRepository) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	query, args, err := r.qb.Select(orderColumns...).From("orders").Where("id = ?", orderID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get order: %w", err)
	}
	return scanOrder(r.pool.QueryRow(ctx, query, args...))
}

func (r *postgresOrderRepository) GetOrderItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	return r.getOrderItems(ctx, r.pool, orderID)
}

func (r *postgresOrderRepository) getOrderItems(ctx context.Context, q querier, orderID uuid.UUID) ([]model.OrderItem, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.line_no, oi.book_id, COALESCE(b.title, ''), oi.quantity, oi.price_at_purchase
		FROM order_items oi
		LEFT JOIN books b ON b.id = oi.book_id
		WHERE oi.order_id = $1
		ORDER BY oi.line_no
	`

	rows, err := q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	items := make([]model.OrderItem, 0)
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.LineNo, &item.BookID, &item.BookTitle, &item.Quantity, &item.PriceAtPurchase); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *postgresOrderRepository) GetStatusHistory(ctx context.Context, orderID uuid.UUID) ([]model.OrderStatusHistory, error) {
	query := `
		SELECT id, order_id, from_status, to_status, changed_by, changed_at
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY changed_at ASC, seq ASC
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("query status history: %w", err)
	}
	defer rows.Close()

	history := make([]model.OrderStatusHistory, 0)
	for rows.Next() {
		var h model.OrderStatusHistory
		if err := rows.Scan(&h.ID, &h.OrderID, &h.FromStatus, &h.ToStatus, &h.ChangedBy, &h.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan status history: %w", err)
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

func applyOrderFilter(b sq.SelectBuilder, f model.OrderFilter) sq.SelectBuilder {
	if f.UserID != nil {
		b = b.Where("user_id = ?", *f.UserID)
	}
	if f.Status != "" {
		b = b.Where(sq.Eq{"status": f.Status})
	}
	return b
}

func (r *postgresOrderRepository) ListOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, int, error) {
	page, limit := utils.NormalizePage(filter.Page, filter.Limit)

	countQuery, countArgs, err := applyOrderFilter(r.qb.Select("COUNT(*)").From("orders"), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query, args, err := applyOrderFilter(r.qb.Select(orderColumns...).From("orders"), filter).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(utils.Offset(page, limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	return orders, total, rows.Err()
}
