package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookHandler "librobuddy-backend/internal/domains/book/handler"
	"librobuddy-backend/internal/domains/book/model"
	bookService "librobuddy-backend/internal/domains/book/service"
	orderHandler "librobuddy-backend/internal/domains/order/handler"
	supplierHandler "librobuddy-backend/internal/domains/supplier/handler"
	userHandler "librobuddy-backend/internal/domains/user/handler"
	"librobuddy-backend/pkg/container"
	"librobuddy-backend/pkg/jwt"
)

// lowStockCatalog answers only the low-stock listing
type lowStockCatalog struct {
	bookService.ServiceInterface
	calls int
	books []model.Book
}

func (s *lowStockCatalog) ListLowStockBooks(ctx context.Context) ([]model.Book, error) {
	s.calls++
	return s.books, nil
}

func newTestRouter(t *testing.T, catalog bookService.ServiceInterface) (*gin.Engine, *jwt.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager := jwt.NewManager("router-test-secret", time.Hour)
	c := &container.Container{
		JWTManager:      manager,
		UserHandler:     userHandler.NewUserHandler(nil),
		BookHandler:     bookHandler.NewHandler(catalog),
		OrderHandler:    orderHandler.NewOrderHandler(nil),
		SupplierHandler: supplierHandler.NewHandler(nil),
	}
	return SetupRouter(c), manager
}

func bearer(t *testing.T, m *jwt.Manager, role string) string {
	t.Helper()
	token, _, err := m.GenerateAccessToken(uuid.NewString(), role+"@example.test", role)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRouter_LowStockListing(t *testing.T) {
	catalog := &lowStockCatalog{books: []model.Book{{
		ID:               uuid.New(),
		Title:            "Dune",
		Price:            decimal.RequireFromString("9.99"),
		StockQuantity:    2,
		ReorderThreshold: 5,
	}}}
	router, manager := newTestRouter(t, catalog)

	tests := []struct {
		name       string
		role       string
		wantStatus int
		wantCalled bool
	}{
		{name: "cashier", role: "cashier", wantStatus: http.StatusOK, wantCalled: true},
		{name: "admin", role: "admin", wantStatus: http.StatusOK, wantCalled: true},
		{name: "customer", role: "customer", wantStatus: http.StatusForbidden},
		{name: "anonymous", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog.calls = 0
			req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory/low-stock", nil)
			if tt.role != "" {
				req.Header.Set("Authorization", bearer(t, manager, tt.role))
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantCalled, catalog.calls == 1)

			if tt.wantStatus == http.StatusOK {
				var body struct {
					Data []model.Book `json:"data"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				require.Len(t, body.Data, 1)
				assert.Equal(t, "Dune", body.Data[0].Title)
			}
		})
	}
}

func TestRouter_LowStockIsNotUnderBooks(t *testing.T) {
	catalog := &lowStockCatalog{}
	router, manager := newTestRouter(t, catalog)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/books/low-stock", nil)
	req.Header.Set("Authorization", bearer(t, manager, "admin"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code, "low-stock is parsed as a book id there")
	assert.Zero(t, catalog.calls)
}
