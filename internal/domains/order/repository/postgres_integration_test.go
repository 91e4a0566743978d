package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookRepo "librobuddy-backend/internal/domains/book/repository"
	"librobuddy-backend/internal/domains/order/model"
	"librobuddy-backend/internal/domains/order/repository"
	"librobuddy-backend/internal/domains/order/service"
	"librobuddy-backend/internal/infrastructure/database/dbtest"
	"librobuddy-backend/internal/shared"
)

func TestOrderDetail_ItemsFollowCartOrder(t *testing.T) {
	pool := dbtest.Open(t)
	repo := repository.NewPostgresOrderRepository(pool)
	svc := service.NewOrderService(pool, repo, bookRepo.NewPostgresRepository(pool))
	ctx := context.Background()

	customer := shared.Actor{UserID: dbtest.InsertUser(t, pool), Role: shared.RoleCustomer}

	// enough lines that a random-id order would almost never match cart order
	cart := make([]model.CartItem, 0, 6)
	for i := 0; i < 6; i++ {
		cart = append(cart, model.CartItem{BookID: dbtest.InsertBook(t, pool, "3.00", 10), Quantity: i + 1})
	}

	placed, err := svc.PlaceOrder(ctx, customer, model.CreateOrderRequest{Items: cart})
	require.NoError(t, err)
	assert.True(t, placed.TotalAmount.Equal(decimal.RequireFromString("63.00")), "total = %s", placed.TotalAmount)

	items, err := repo.GetOrderItems(ctx, placed.OrderID)
	require.NoError(t, err)
	require.Len(t, items, len(cart))
	for i, item := range items {
		assert.Equal(t, i+1, item.LineNo)
		require.NotNil(t, item.BookID)
		assert.Equal(t, cart[i].BookID, *item.BookID, "line %d", i+1)
		assert.Equal(t, cart[i].Quantity, item.Quantity)
		assert.Equal(t, "Test Book", item.BookTitle)
	}
}

func TestOrderDetail_HistoryUsesDatabaseClock(t *testing.T) {
	pool := dbtest.Open(t)
	repo := repository.NewPostgresOrderRepository(pool)
	svc := service.NewOrderService(pool, repo, bookRepo.NewPostgresRepository(pool))
	ctx := context.Background()

	customer := shared.Actor{UserID: dbtest.InsertUser(t, pool), Role: shared.RoleCustomer}
	bookID := dbtest.InsertBook(t, pool, "8.00", 4)

	placed, err := svc.PlaceOrder(ctx, customer, model.CreateOrderRequest{
		Items: []model.CartItem{{BookID: bookID, Quantity: 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, dbtest.Stock(t, pool, bookID))

	require.NoError(t, svc.UpdateOrderStatus(ctx, customer, placed.OrderID,
		model.UpdateOrderStatusRequest{Status: model.OrderStatusCancelled}))
	assert.Equal(t, 4, dbtest.Stock(t, pool, bookID))

	detail, err := svc.GetOrderDetail(ctx, customer, placed.OrderID)
	require.NoError(t, err)
	require.Len(t, detail.History, 2)

	created, cancelled := detail.History[0], detail.History[1]
	assert.Nil(t, created.FromStatus)
	assert.Equal(t, model.OrderStatusPending, created.ToStatus)
	require.NotNil(t, cancelled.FromStatus)
	assert.Equal(t, model.OrderStatusPending, *cancelled.FromStatus)
	assert.Equal(t, model.OrderStatusCancelled, cancelled.ToStatus)

	assert.True(t, created.ChangedAt.Equal(detail.CreatedAt), "creation history shares the order's insert timestamp")
	assert.True(t, cancelled.ChangedAt.Equal(detail.UpdatedAt), "cancellation history shares the order's update timestamp")
	assert.False(t, cancelled.ChangedAt.Before(created.ChangedAt))
}

func TestPlaceOrder_ConcurrentPlacementsNeverOversell(t *testing.T) {
	pool := dbtest.Open(t)
	repo := repository.NewPostgresOrderRepository(pool)
	svc := service.NewOrderService(pool, repo, bookRepo.NewPostgresRepository(pool))
	ctx := context.Background()

	bookID := dbtest.InsertBook(t, pool, "10.00", 5)
	const buyers = 4

	actors := make([]shared.Actor, buyers)
	for i := range actors {
		actors[i] = shared.Actor{UserID: dbtest.InsertUser(t, pool), Role: shared.RoleCustomer}
	}

	var wg sync.WaitGroup
	errs := make([]error, buyers)
	for i := range actors {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.PlaceOrder(ctx, actors[i], model.CreateOrderRequest{
				Items: []model.CartItem{{BookID: bookID, Quantity: 3}},
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var orderErr *model.OrderError
		require.True(t, errors.As(err, &orderErr), "unexpected error: %v", err)
		assert.Equal(t, model.ErrCodeInsufficientStock, orderErr.Code)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 2, dbtest.Stock(t, pool, bookID))
}

func TestPlaceOrder_UnknownCustomer(t *testing.T) {
	pool := dbtest.Open(t)
	repo := repository.NewPostgresOrderRepository(pool)
	svc := service.NewOrderService(pool, repo, bookRepo.NewPostgresRepository(pool))

	bookID := dbtest.InsertBook(t, pool, "10.00", 5)
	ghost := shared.Actor{UserID: uuid.New(), Role: shared.RoleCustomer}

	_, err := svc.PlaceOrder(context.Background(), ghost, model.CreateOrderRequest{
		Items: []model.CartItem{{BookID: bookID, Quantity: 1}},
	})

	var orderErr *model.OrderError
	require.True(t, errors.As(err, &orderErr), "unexpected error: %v", err)
	assert.Equal(t, model.ErrCodeCustomerNotFound, orderErr.Code)
	assert.Equal(t, 5, dbtest.Stock(t, pool, bookID))
}
