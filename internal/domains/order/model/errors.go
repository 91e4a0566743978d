package model

import (
	"errors"

	"github.com/google/uuid"
)

// =====================================================
// CUSTOM ERROR CODES
// =====================================================
const (
	ErrCodeOrderNotFound     = "ORD001"
	ErrCodeItemNotFound      = "ORD002"
	ErrCodeInsufficientStock = "ORD003"
	ErrCodeInvalidItem       = "ORD004"
	ErrCodeCartEmpty         = "ORD005"
	ErrCodeInvalidStatus     = "ORD006"
	ErrCodeForbidden         = "ORD007"
	ErrCodeCustomerNotFound  = "ORD008"
	ErrCodeTotalTooLarge     = "ORD009"
	ErrCodeStockLimit        = "ORD010"
)

// =====================================================
// ERROR DEFINITIONS
// =====================================================
var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidItem       = errors.New("invalid item")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrInvalidStatus     = errors.New("invalid status value")
	ErrForbidden         = errors.New("forbidden")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrTotalTooLarge     = errors.New("order total too large")
	ErrStockLimit        = errors.New("stock limit exceeded")
)

// =====================================================
// CUSTOM ERROR TYPE
// =====================================================
type OrderError struct {
	Code    string
	Message string
	Details map[string]interface{}
	Err     error
}

func (e *OrderError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *OrderError) Unwrap() error {
	return e.Err
}

// NewOrderError creates a new OrderError
func NewOrderError(code, message string, err error) *OrderError {
	return &OrderError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewInsufficientStockError names the offending book and the quantities involved
func NewInsufficientStockError(bookID uuid.UUID, title string, available, requested int) *OrderError {
	return &OrderError{
		Code:    ErrCodeInsufficientStock,
		Message: "insufficient stock for " + title,
		Details: map[string]interface{}{
			"book_id":   bookID,
			"title":     title,
			"available": available,
			"requested": requested,
		},
		Err: ErrInsufficientStock,
	}
}

func NewItemNotFoundError(bookID uuid.UUID) *OrderError {
	return &OrderError{
		Code:    ErrCodeItemNotFound,
		Message: "book " + bookID.String() + " not found",
		Details: map[string]interface{}{"book_id": bookID},
		Err:     ErrItemNotFound,
	}
}

func NewInvalidItemError(index int, reason string) *OrderError {
	return &OrderError{
		Code:    ErrCodeInvalidItem,
		Message: reason,
		Details: map[string]interface{}{"index": index},
		Err:     ErrInvalidItem,
	}
}
