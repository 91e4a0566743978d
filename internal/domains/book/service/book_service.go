package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"librobuddy-backend/internal/domains/book/model"
	"librobuddy-backend/internal/domains/book/repository"
	"librobuddy-backend/pkg/logger"
)

type Service struct {
	repo repository.RepositoryInterface
}

func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &Service{repo: repo}
}

func (s *Service) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	threshold := model.DefaultReorderThreshold
	if req.ReorderThreshold != nil {
		threshold = *req.ReorderThreshold
	}

	now := time.Now()
	book := &model.Book{
		ID:               uuid.New(),
		Title:            req.Title,
		Author:           req.Author,
		ISBN:             req.ISBN,
		CategoryID:       req.CategoryID,
		Price:            req.Price,
		StockQuantity:    req.StockQuantity,
		ReorderThreshold: threshold,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.CreateBook(ctx, book); err != nil {
		return nil, err
	}

	logger.Info("book created", map[string]interface{}{
		"book_id": book.ID,
		"isbn":    book.ISBN,
	})
	return book, nil
}

func (s *Service) GetBook(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	return s.repo.GetBookByID(ctx, id)
}

func (s *Service) ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.ListBooks(ctx, filter)
}

func (s *Service) UpdateBook(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.Book, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	book, err := s.repo.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(book)
	if err := s.repo.UpdateBook(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *Service) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteBook(ctx, id); err != nil {
		return err
	}
	logger.Info("book deleted", map[string]interface{}{"book_id": id})
	return nil
}

func (s *Service) ListLowStockBooks(ctx context.Context) ([]model.Book, error) {
	return s.repo.ListLowStockBooks(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, req model.CreateCategoryRequest) (*model.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	category := &model.Category{
		ID:        uuid.New(),
		Name:      req.Name,
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.repo.ListCategories(ctx)
}
