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

	"librobuddy-backend/internal/domains/supplier/model"
	"librobuddy-backend/internal/infrastructure/database"
	"librobuddy-backend/internal/shared/utils"
)

var supplierOrderColumns = []string{
	"id", "supplier_id", "book_id", "quantity", "status",
	"expected_delivery_date", "received_at", "created_at", "updated_at",
}

type postgresRepository struct {
	pool *pgxpool.Pool
	qb   sq.StatementBuilderType
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{
		pool: pool,
		qb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanSupplierOrder(row pgx.Row) (*model.SupplierOrder, error) {
	var o model.SupplierOrder
	err := row.Scan(
		&o.ID, &o.SupplierID, &o.BookID, &o.Quantity, &o.Status,
		&o.ExpectedDeliveryDate, &o.ReceivedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSupplierOrderNotFound
		}
		return nil, fmt.Errorf("scan supplier order: %w", err)
	}
	return &o, nil
}

// ==================== SUPPLIERS ====================

func (r *postgresRepository) CreateSupplier(ctx context.Context, s *model.Supplier) error {
	query := `INSERT INTO suppliers (id, name, contact_email, phone, created_at)
    VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query, s.ID, s.Name, s.ContactEmail, s.Phone, s.CreatedAt)
	if err != nil {
		if database.IsConstraint(err, "suppliers_contact_email_key") {
			return model.ErrSupplierEmailExists
		}
		return fmt.Errorf("failed to create supplier: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	query := `SELECT id, name, contact_email, phone, created_at FROM suppliers ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := make([]model.Supplier, 0)
	for rows.Next() {
		var s model.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.ContactEmail, &s.Phone, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

// ==================== SUPPLIER ORDERS ====================

func (r *postgresRepository) CreateSupplierOrder(ctx context.Context, o *model.SupplierOrder) error {
	query, args, err := r.qb.Insert("supplier_orders").
		Columns(supplierOrderColumns...).
		Values(
			o.ID, o.SupplierID, o.BookID, o.Quantity, o.Status,
			o.ExpectedDeliveryDate, o.ReceivedAt, o.CreatedAt, o.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		switch {
		case database.IsConstraint(err, "supplier_orders_supplier_id_fkey"):
			return model.ErrSupplierNotFound
		case database.IsConstraint(err, "supplier_orders_book_id_fkey"):
			return model.ErrBookNotFound
		case database.IsValueOutOfRange(err):
			return model.ErrValueOutOfRange
		}
		return fmt.Errorf("failed to create supplier order: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetSupplierOrderByID(ctx context.Context, id uuid.UUID) (*model.SupplierOrder, error) {
	query, args, err := r.qb.Select(supplierOrderColumns...).
		From("supplier_orders").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	return scanSupplierOrder(r.pool.QueryRow(ctx, query, args...))
}

func applySupplierOrderFilter(b sq.SelectBuilder, f model.ListSupplierOrderFilter) sq.SelectBuilder {
	if f.Status != "" {
		b = b.Where("status = ?", f.Status)
	}
	if f.SupplierID != nil {
		b = b.Where("supplier_id = ?", *f.SupplierID)
	}
	return b
}

func (r *postgresRepository) ListSupplierOrders(ctx context.Context, filter model.ListSupplierOrderFilter) ([]model.SupplierOrder, int, error) {
	countQuery, countArgs, err := applySupplierOrderFilter(r.qb.Select("COUNT(*)").From("supplier_orders"), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count supplier orders: %w", err)
	}

	query, args, err := applySupplierOrderFilter(r.qb.Select(supplierOrderColumns...).From("supplier_orders"), filter).
		OrderBy("created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(utils.Offset(filter.Page, filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list supplier orders: %w", err)
	}
	defer rows.Close()

	orders := make([]model.SupplierOrder, 0)
	for rows.Next() {
		o, err := scanSupplierOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	return orders, total, rows.Err()
}

// ==================== RECEIPT ====================

func (r *postgresRepository) GetSupplierOrderForUpdateWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.SupplierOrder, error) {
	query, args, err := r.qb.Select(supplierOrderColumns...).
		From("supplier_orders").
		Where("id = ?", id).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	return scanSupplierOrder(tx.QueryRow(ctx, query, args...))
}

// UpdateSupplierOrderStatusWithTx writes the status; received_at is only filled when still NULL
func (r *postgresRepository) UpdateSupplierOrderStatusWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status string, receivedAt *time.Time) (time.Time, error) {
	query := `UPDATE supplier_orders
    SET status = $2, received_at = COALESCE(received_at, $3), updated_at = NOW()
    WHERE id = $1
    RETURNING updated_at`

	var updatedAt time.Time
	err := tx.QueryRow(ctx, query, id, status, receivedAt).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, model.ErrSupplierOrderNotFound
		}
		if database.IsConstraint(err, "supplier_orders_status_check") {
			return time.Time{}, model.ErrInvalidStatus
		}
		return time.Time{}, fmt.Errorf("failed to update supplier order status: %w", err)
	}
	return updatedAt, nil
}
