package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookRepo "librobuddy-backend/internal/domains/book/repository"
	"librobuddy-backend/internal/domains/supplier/model"
	"librobuddy-backend/internal/domains/supplier/repository"
	"librobuddy-backend/internal/domains/supplier/service"
	"librobuddy-backend/internal/infrastructure/database/dbtest"
	"librobuddy-backend/pkg/database"
)

func setupSupplierOrder(t *testing.T, repo repository.Repository, bookID uuid.UUID, quantity int) *model.SupplierOrder {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	supplier := &model.Supplier{ID: uuid.New(), Name: "Acme Books", CreatedAt: now}
	require.NoError(t, repo.CreateSupplier(ctx, supplier))

	order := &model.SupplierOrder{
		ID:         uuid.New(),
		SupplierID: supplier.ID,
		BookID:     bookID,
		Quantity:   quantity,
		Status:     model.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, repo.CreateSupplierOrder(ctx, order))
	return order
}

func updateStatus(t *testing.T, pool database.TxBeginner, repo repository.Repository, id uuid.UUID, status string, receivedAt *time.Time) {
	t.Helper()
	ctx := context.Background()
	err := database.WithTransaction(ctx, pool, func(tx pgx.Tx) error {
		_, err := repo.UpdateSupplierOrderStatusWithTx(ctx, tx, id, status, receivedAt)
		return err
	})
	require.NoError(t, err)
}

func TestUpdateSupplierOrderStatusWithTx_KeepsFirstReceivedAt(t *testing.T) {
	pool := dbtest.Open(t)
	repo := repository.NewRepository(pool)
	ctx := context.Background()

	order := setupSupplierOrder(t, repo, dbtest.InsertBook(t, pool, "4.00", 0), 10)

	first := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	second := first.Add(48 * time.Hour)

	updateStatus(t, pool, repo, order.ID, model.StatusReceived, &first)
	updateStatus(t, pool, repo, order.ID, model.StatusShipped, nil)
	updateStatus(t, pool, repo, order.ID, model.StatusReceived, &second)

	got, err := repo.GetSupplierOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusReceived, got.Status)
	require.NotNil(t, got.ReceivedAt)
	assert.True(t, got.ReceivedAt.Equal(first), "received_at = %s, want %s", got.ReceivedAt, first)
}

func TestUpdateSupplierOrderStatusWithTx_MissingOrder(t *testing.T) {
	pool := dbtest.Open(t)
	repo := repository.NewRepository(pool)
	ctx := context.Background()

	err := database.WithTransaction(ctx, pool, func(tx pgx.Tx) error {
		_, err := repo.UpdateSupplierOrderStatusWithTx(ctx, tx, uuid.New(), model.StatusShipped, nil)
		return err
	})
	assert.ErrorIs(t, err, model.ErrSupplierOrderNotFound)
}

func TestCreateSupplierOrder_UnknownReferences(t *testing.T) {
	pool := dbtest.Open(t)
	repo := repository.NewRepository(pool)
	ctx := context.Background()
	now := time.Now()

	existing := setupSupplierOrder(t, repo, dbtest.InsertBook(t, pool, "4.00", 0), 1)

	tests := []struct {
		name       string
		supplierID uuid.UUID
		bookID     uuid.UUID
		want       error
	}{
		{"unknown supplier", uuid.New(), existing.BookID, model.ErrSupplierNotFound},
		{"unknown book", existing.SupplierID, uuid.New(), model.ErrBookNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.CreateSupplierOrder(ctx, &model.SupplierOrder{
				ID: uuid.New(), SupplierID: tt.supplierID, BookID: tt.bookID,
				Quantity: 1, Status: model.StatusPending, CreatedAt: now, UpdatedAt: now,
			})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// Receipt through the service against the real schema credits stock once
func TestReceiveSupplierOrder_CreditsStockOnce(t *testing.T) {
	pool := dbtest.Open(t)
	repo := repository.NewRepository(pool)
	svc := service.NewService(pool, repo, bookRepo.NewPostgresRepository(pool))
	ctx := context.Background()
	staff := uuid.New()

	bookID := dbtest.InsertBook(t, pool, "4.00", 3)
	order := setupSupplierOrder(t, repo, bookID, 10)

	steps := []string{model.StatusReceived, model.StatusShipped, model.StatusReceived}
	for _, status := range steps {
		_, err := svc.UpdateSupplierOrderStatus(ctx, staff, order.ID, model.UpdateSupplierOrderStatusRequest{Status: status})
		require.NoError(t, err, status)
	}

	assert.Equal(t, 13, dbtest.Stock(t, pool, bookID))

	got, err := repo.GetSupplierOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, got.Credited())
}
