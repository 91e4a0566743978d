package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"librobuddy-backend/internal/domains/book/model"
)

// RepositoryInterface defines data access for the catalog
type RepositoryInterface interface {
	CreateBook(ctx context.Context, book *model.Book) error
	GetBookByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error)
	UpdateBook(ctx context.Context, book *model.Book) error
	DeleteBook(ctx context.Context, id uuid.UUID) error
	ListLowStockBooks(ctx context.Context) ([]model.Book, error)

	CreateCategory(ctx context.Context, category *model.Category) error
	ListCategories(ctx context.Context) ([]model.Category, error)

	StockRepository
}

// StockRepository holds the stock primitives other domains run inside their own transaction
type StockRepository interface {
	// LockBooksForUpdateWithTx row-locks the given books in id order. Missing ids are absent from the map.
	LockBooksForUpdateWithTx(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) (map[uuid.UUID]*model.Book, error)

	// DecrementStockWithTx returns ErrInsufficientStock when stock would go negative
	DecrementStockWithTx(ctx context.Context, tx pgx.Tx, bookID uuid.UUID, quantity int) error

	// IncrementStockWithTx returns ErrBookNotFound when the book no longer exists
	IncrementStockWithTx(ctx context.Context, tx pgx.Tx, bookID uuid.UUID, quantity int) error
}
