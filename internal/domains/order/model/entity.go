package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// ORDER STATUS
// =====================================================
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// ValidStatuses lists every accepted order status
var ValidStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// CustomerCancellable reports whether a customer may still cancel an order in this status
func CustomerCancellable(status string) bool {
	return status == OrderStatusPending || status == OrderStatusProcessing
}

// =====================================================
// ENTITIES
// =====================================================

// Order maps to the orders table
type Order struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	EmployeeID  *uuid.UUID      `json:"employee_id,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// OrderItem maps to order_items. BookID is nil once the book has been deleted.
// LineNo is the 1-based position of the line in the cart.
type OrderItem struct {
	ID              uuid.UUID       `json:"id"`
	OrderID         uuid.UUID       `json:"order_id"`
	LineNo          int             `json:"line_no"`
	BookID          *uuid.UUID      `json:"book_id"`
	BookTitle       string          `json:"book_title,omitempty"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
}

// Subtotal is price_at_purchase × quantity
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.PriceAtPurchase.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderStatusHistory records every status change. FromStatus is nil for the creation row.
type OrderStatusHistory struct {
	ID         uuid.UUID  `json:"id"`
	OrderID    uuid.UUID  `json:"order_id"`
	FromStatus *string    `json:"from_status"`
	ToStatus   string     `json:"to_status"`
	ChangedBy  *uuid.UUID `json:"changed_by,omitempty"`
	ChangedAt  time.Time  `json:"changed_at"`
}

// OrderFilter is the list query for orders
type OrderFilter struct {
	UserID *uuid.UUID
	Status string
	Page   int
	Limit  int
}
