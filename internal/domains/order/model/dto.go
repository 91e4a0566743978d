package model

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// REQUEST DTOs
// =====================================================

type CartItem struct {
	BookID   uuid.UUID `json:"book_id"`
	Quantity int       `json:"quantity"`

	decodeErr string
}

// UnmarshalJSON keeps a line whose book_id or quantity does not decode, so
// placement can reject it as an invalid item at its cart index.
func (i *CartItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		BookID   json.RawMessage `json:"book_id"`
		Quantity json.RawMessage `json:"quantity"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*i = CartItem{}
	if len(raw.BookID) > 0 && string(raw.BookID) != "null" {
		var s string
		if err := json.Unmarshal(raw.BookID, &s); err != nil {
			i.decodeErr = "book_id must be a UUID string"
		} else if s != "" {
			id, err := uuid.Parse(s)
			if err != nil {
				i.decodeErr = "book_id is not a valid UUID"
			}
			i.BookID = id
		}
	}
	if len(raw.Quantity) > 0 && string(raw.Quantity) != "null" && i.decodeErr == "" {
		if err := json.Unmarshal(raw.Quantity, &i.Quantity); err != nil {
			i.decodeErr = "quantity must be an integer"
		}
	}
	return nil
}

// DecodeError is the reason the line could not be decoded, or ""
func (i CartItem) DecodeError() string {
	return i.decodeErr
}

// CreateOrderRequest is validated by the service so cart errors keep their order codes
type CreateOrderRequest struct {
	// CustomerID lets staff place an order on behalf of a customer
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	Items      []CartItem `json:"items"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type ListOrdersRequest struct {
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (r ListOrdersRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.In(
			OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
			OrderStatusDelivered, OrderStatusCancelled,
		)),
		validation.Field(&r.Page, validation.Min(0)),
		validation.Field(&r.Limit, validation.Min(0), validation.Max(100)),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type CreateOrderResponse struct {
	OrderID     uuid.UUID       `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
}

type OrderDetailResponse struct {
	Order
	Items   []OrderItem          `json:"items"`
	History []OrderStatusHistory `json:"history"`
}

type ListOrdersResponse struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}
