package model

import (
	"time"

	"github.com/google/uuid"
)

// Supplier order statuses, stored as-is in supplier_orders.status
const (
	StatusPending   = "Pending"
	StatusShipped   = "Shipped"
	StatusReceived  = "Received"
	StatusCancelled = "Cancelled"
)

var ValidStatuses = []string{StatusPending, StatusShipped, StatusReceived, StatusCancelled}

func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Supplier maps to the suppliers table
type Supplier struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ContactEmail *string   `json:"contact_email,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// SupplierOrder is a restock order placed with a supplier for one book.
// ReceivedAt is set the first time the order reaches Received and never cleared.
type SupplierOrder struct {
	ID                   uuid.UUID  `json:"id"`
	SupplierID           uuid.UUID  `json:"supplier_id"`
	BookID               uuid.UUID  `json:"book_id"`
	Quantity             int        `json:"quantity"`
	Status               string     `json:"status"`
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date,omitempty"`
	ReceivedAt           *time.Time `json:"received_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// Credited reports whether the order's quantity has already been added to stock
func (o SupplierOrder) Credited() bool {
	return o.ReceivedAt != nil
}

type ListSupplierOrderFilter struct {
	Status     string
	SupplierID *uuid.UUID
	Page       int
	Limit      int
}
