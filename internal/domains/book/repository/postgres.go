package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"librobuddy-backend/internal/domains/book/model"
	"librobuddy-backend/internal/infrastructure/database"
	"librobuddy-backend/internal/shared/utils"
)

var bookColumns = []string{
	"id", "title", "author", "isbn", "category_id", "price",
	"stock_quantity", "reorder_threshold", "created_at", "updated_at",
}

type postgresRepository struct {
	pool *pgxpool.Pool
	qb   sq.StatementBuilderType
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
		qb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.ISBN, &b.CategoryID, &b.Price,
		&b.StockQuantity, &b.ReorderThreshold, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBooks(rows pgx.Rows) ([]model.Book, error) {
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *b)
	}
	return books, rows.Err()
}

// mapWriteError translates constraint violations on books into domain errors
func mapWriteError(err error) error {
	switch {
	case database.IsConstraint(err, "books_isbn_key"):
		return model.ErrISBNAlreadyExists
	case database.IsConstraint(err, "books_category_id_fkey"):
		return model.ErrCategoryNotFound
	case database.IsConstraint(err, "books_stock_quantity_check"):
		return model.ErrInsufficientStock
	case database.IsCheckViolation(err), database.IsValueOutOfRange(err):
		return model.ErrValueOutOfRange
	}
	return err
}

// ========================================
// CATALOG
// ========================================

func (r *postgresRepository) CreateBook(ctx context.Context, b *model.Book) error {
	query, args, err := r.qb.Insert("books").
		Columns(bookColumns...).
		Values(b.ID, b.Title, b.Author, b.ISBN, b.CategoryID, b.Price,
			b.StockQuantity, b.ReorderThreshold, b.CreatedAt, b.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		if mapped := mapWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetBookByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query, args, err := r.qb.Select(bookColumns...).From("books").Where("id = ?", id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	b, err := scanBook(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return b, nil
}

func applyBookFilter(b sq.SelectBuilder, f model.BookFilter) sq.SelectBuilder {
	if f.CategoryID != nil {
		b = b.Where("category_id = ?", *f.CategoryID)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		b = b.Where(sq.Or{sq.ILike{"title": like}, sq.ILike{"author": like}})
	}
	return b
}

func (r *postgresRepository) ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error) {
	page, limit := utils.NormalizePage(filter.Page, filter.Limit)

	countQuery, countArgs, err := applyBookFilter(r.qb.Select("COUNT(*)").From("books"), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	query, args, err := applyBookFilter(r.qb.Select(bookColumns...).From("books"), filter).
		OrderBy("title ASC", "id ASC").
		Limit(uint64(limit)).
		Offset(utils.Offset(page, limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}

	books, err := collectBooks(rows)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (r *postgresRepository) UpdateBook(ctx context.Context, b *model.Book) error {
	query, args, err := r.qb.Update("books").
		SetMap(map[string]interface{}{
			"title":             b.Title,
			"author":            b.Author,
			"isbn":              b.ISBN,
			"category_id":       b.CategoryID,
			"price":             b.Price,
			"reorder_threshold": b.ReorderThreshold,
			"updated_at":        sq.Expr("NOW()"),
		}).
		Where("id = ?", b.ID).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrBookNotFound
		}
		if mapped := mapWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

// DeleteBook keeps order history: order_items.book_id is set null by the foreign key.
// Supplier orders still referencing the book block the delete.
func (r *postgresRepository) DeleteBook(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		if database.IsConstraint(err, "supplier_orders_book_id_fkey") {
			return model.ErrBookHasSupplierOrders
		}
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) ListLowStockBooks(ctx context.Context) ([]model.Book, error) {
	query, args, err := r.qb.Select(bookColumns...).
		From("books").
		Where("stock_quantity <= reorder_threshold").
		OrderBy("stock_quantity ASC", "title ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build low stock: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return collectBooks(rows)
}

// ========================================
// CATEGORIES
// ========================================

func (r *postgresRepository) CreateCategory(ctx context.Context, c *model.Category) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO categories (id, name, created_at) VALUES ($1, $2, $3)`,
		c.ID, c.Name, c.CreatedAt,
	)
	if err != nil {
		if database.IsConstraint(err, "categories_name_key") {
			return model.ErrCategoryAlreadyExists
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ========================================
// STOCK PRIMITIVES (caller's transaction)
// ========================================

func (r *postgresRepository) LockBooksForUpdateWithTx(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) (map[uuid.UUID]*model.Book, error) {
	result := make(map[uuid.UUID]*model.Book, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	// fixed lock order across concurrent placements
	query, args, err := r.qb.Select(bookColumns...).
		From("books").
		Where("id = ANY(?::uuid[])", ids).
		OrderBy("id").
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lock: %w", err)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("lock books: %w", err)
	}

	books, err := collectBooks(rows)
	if err != nil {
		return nil, err
	}
	for i := range books {
		result[books[i].ID] = &books[i]
	}
	return result, nil
}

func (r *postgresRepository) DecrementStockWithTx(ctx context.Context, tx pgx.Tx, bookID uuid.UUID, quantity int) error {
	tag, err := tx.Exec(ctx, `
		UPDATE books
		SET stock_quantity = stock_quantity - $2, updated_at = NOW()
		WHERE id = $1 AND stock_quantity >= $2
	`, bookID, quantity)
	if err != nil {
		if database.IsConstraint(err, "books_stock_quantity_check") {
			return model.ErrInsufficientStock
		}
		return fmt.Errorf("decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrInsufficientStock
	}
	return nil
}

func (r *postgresRepository) IncrementStockWithTx(ctx context.Context, tx pgx.Tx, bookID uuid.UUID, quantity int) error {
	tag, err := tx.Exec(ctx, `
		UPDATE books
		SET stock_quantity = stock_quantity + $2, updated_at = NOW()
		WHERE id = $1
	`, bookID, quantity)
	if err != nil {
		if database.IsValueOutOfRange(err) {
			return model.ErrValueOutOfRange
		}
		return fmt.Errorf("increment stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}
