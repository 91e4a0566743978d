package service

import (
	"context"

	"github.com/google/uuid"

	"librobuddy-backend/internal/domains/book/model"
)

// ServiceInterface defines catalog business logic
type ServiceInterface interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*model.Book, error)
	ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error)
	UpdateBook(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
	ListLowStockBooks(ctx context.Context) ([]model.Book, error)

	CreateCategory(ctx context.Context, req model.CreateCategoryRequest) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
}
