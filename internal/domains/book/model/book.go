package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultReorderThreshold applies when a book is created without one
const DefaultReorderThreshold = 5

// Book represents the catalog entry and its on-hand stock
type Book struct {
	ID               uuid.UUID       `json:"id"`
	Title            string          `json:"title"`
	Author           string          `json:"author"`
	ISBN             string          `json:"isbn"`
	CategoryID       *uuid.UUID      `json:"category_id,omitempty"`
	Price            decimal.Decimal `json:"price"`
	StockQuantity    int             `json:"stock_quantity"`
	ReorderThreshold int             `json:"reorder_threshold"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// IsLowStock reports whether the book is at or below its reorder threshold
func (b *Book) IsLowStock() bool {
	return b.StockQuantity <= b.ReorderThreshold
}

type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
