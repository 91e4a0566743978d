package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librobuddy-backend/internal/domains/book/model"
	"librobuddy-backend/internal/domains/book/repository"
	"librobuddy-backend/internal/infrastructure/database/dbtest"
	"librobuddy-backend/internal/shared"
	"librobuddy-backend/pkg/database"
)

func TestDecrementStockWithTx_GuardsAgainstNegativeStock(t *testing.T) {
	pool := dbtest.Open(t)
	repo := repository.NewPostgresRepository(pool)
	ctx := context.Background()
	bookID := dbtest.InsertBook(t, pool, "12.50", 5)

	err := database.WithTransaction(ctx, pool, func(tx pgx.Tx) error {
		require.NoError(t, repo.DecrementStockWithTx(ctx, tx, bookID, 3))
		return repo.DecrementStockWithTx(ctx, tx, bookID, 3)
	})

	assert.ErrorIs(t, err, model.ErrInsufficientStock)
	assert.Equal(t, 5, dbtest.Stock(t, pool, bookID), "rolled back transaction must leave stock untouched")

	err = database.WithTransaction(ctx, pool, func(tx pgx.Tx) error {
		return repo.DecrementStockWithTx(ctx, tx, bookID, 5)
	})
	require.NoError(t, err)
	assert.Equal(t, 0, dbtest.Stock(t, pool, bookID))
}

func TestIncrementStockWithTx(t *testing.T) {
	pool := dbtest.Open(t)
	repo := repository.NewPostgresRepository(pool)
	ctx := context.Background()

	t.Run("credits stock", func(t *testing.T) {
		bookID := dbtest.InsertBook(t, pool, "9.99", 2)
		err := database.WithTransaction(ctx, pool, func(tx pgx.Tx) error {
			return repo.IncrementStockWithTx(ctx, tx, bookID, 8)
		})
		require.NoError(t, err)
		assert.Equal(t, 10, dbtest.Stock(t, pool, bookID))
	})

	t.Run("missing book", func(t *testing.T) {
		err := database.WithTransaction(ctx, pool, func(tx pgx.Tx) error {
			return repo.IncrementStockWithTx(ctx, tx, uuid.New(), 1)
		})
		assert.ErrorIs(t, err, model.ErrBookNotFound)
	})

	t.Run("integer overflow", func(t *testing.T) {
		bookID := dbtest.InsertBook(t, pool, "9.99", shared.MaxQuantity-1)
		err := database.WithTransaction(ctx, pool, func(tx pgx.Tx) error {
			return repo.IncrementStockWithTx(ctx, tx, bookID, 5)
		})
		assert.ErrorIs(t, err, model.ErrValueOutOfRange)
		assert.Equal(t, shared.MaxQuantity-1, dbtest.Stock(t, pool, bookID))
	})
}

func TestCreateBook_PriceBeyondColumnPrecision(t *testing.T) {
	pool := dbtest.Open(t)
	repo := repository.NewPostgresRepository(pool)
	now := time.Now()

	book := &model.Book{
		ID:               uuid.New(),
		Title:            "Overpriced",
		Author:           "Nobody",
		ISBN:             dbtest.ISBN(),
		Price:            decimal.RequireFromString("123456789012.34"),
		StockQuantity:    1,
		ReorderThreshold: 5,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err := repo.CreateBook(context.Background(), book)
	assert.ErrorIs(t, err, model.ErrValueOutOfRange)
}

func TestLockBooksForUpdateWithTx(t *testing.T) {
	pool := dbtest.Open(t)
	repo := repository.NewPostgresRepository(pool)
	ctx := context.Background()

	t.Run("returns locked rows keyed by id and skips missing ids", func(t *testing.T) {
		a := dbtest.InsertBook(t, pool, "1.00", 1)
		b := dbtest.InsertBook(t, pool, "2.00", 2)
		missing := uuid.New()

		err := database.WithTransaction(ctx, pool, func(tx pgx.Tx) error {
			books, err := repo.LockBooksForUpdateWithTx(ctx, tx, []uuid.UUID{b, missing, a})
			if err != nil {
				return err
			}
			require.Len(t, books, 2)
			assert.Equal(t, 1, books[a].StockQuantity)
			assert.Equal(t, 2, books[b].StockQuantity)
			assert.True(t, books[b].Price.Equal(decimal.RequireFromString("2.00")))
			assert.NotContains(t, books, missing)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("second placement waits for the first and sees its decrement", func(t *testing.T) {
		bookID := dbtest.InsertBook(t, pool, "5.00", 5)

		first, err := pool.Begin(ctx)
		require.NoError(t, err)
		defer first.Rollback(ctx)

		locked, err := repo.LockBooksForUpdateWithTx(ctx, first, []uuid.UUID{bookID})
		require.NoError(t, err)
		require.Equal(t, 5, locked[bookID].StockQuantity)

		seen := make(chan int, 1)
		done := make(chan error, 1)
		go func() {
			done <- database.WithTransaction(ctx, pool, func(tx pgx.Tx) error {
				books, err := repo.LockBooksForUpdateWithTx(ctx, tx, []uuid.UUID{bookID})
				if err != nil {
					return err
				}
				seen <- books[bookID].StockQuantity
				if books[bookID].StockQuantity < 3 {
					return model.ErrInsufficientStock
				}
				return repo.DecrementStockWithTx(ctx, tx, bookID, 3)
			})
		}()

		select {
		case <-seen:
			t.Fatal("second transaction read the row while the first held its lock")
		case <-time.After(200 * time.Millisecond):
		}

		require.NoError(t, repo.DecrementStockWithTx(ctx, first, bookID, 3))
		require.NoError(t, first.Commit(ctx))

		select {
		case stock := <-seen:
			assert.Equal(t, 2, stock)
		case <-time.After(5 * time.Second):
			t.Fatal("second transaction never acquired the lock")
		}
		err = <-done
		assert.True(t, errors.Is(err, model.ErrInsufficientStock), "got %v", err)
		assert.Equal(t, 2, dbtest.Stock(t, pool, bookID))
	})
}
