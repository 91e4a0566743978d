package model

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"librobuddy-backend/internal/shared"
)

const dateLayout = "2006-01-02"

// requiredUUID rejects uuid.Nil, which validation.Required lets through for arrays
var requiredUUID = validation.By(func(value interface{}) error {
	if id, ok := value.(uuid.UUID); ok && id == uuid.Nil {
		return errors.New("cannot be blank")
	}
	return nil
})

type CreateSupplierRequest struct {
	Name         string  `json:"name"`
	ContactEmail *string `json:"contact_email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
}

func (r *CreateSupplierRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	if r.ContactEmail != nil {
		email := strings.ToLower(strings.TrimSpace(*r.ContactEmail))
		r.ContactEmail = &email
		if email == "" {
			r.ContactEmail = nil
		}
	}
}

func (r CreateSupplierRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.ContactEmail, validation.NilOrNotEmpty, is.EmailFormat),
		validation.Field(&r.Phone, validation.NilOrNotEmpty, validation.Length(3, 32)),
	)
}

type CreateSupplierOrderRequest struct {
	SupplierID uuid.UUID `json:"supplier_id"`
	BookID     uuid.UUID `json:"book_id"`
	Quantity   int       `json:"quantity"`
	// ExpectedDeliveryDate is YYYY-MM-DD
	ExpectedDeliveryDate string `json:"expected_delivery_date,omitempty"`
}

func (r CreateSupplierOrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SupplierID, requiredUUID),
		validation.Field(&r.BookID, requiredUUID),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1), validation.Max(shared.MaxQuantity)),
		validation.Field(&r.ExpectedDeliveryDate, validation.Date(dateLayout)),
	)
}

// ExpectedDate parses ExpectedDeliveryDate; empty means unknown
func (r CreateSupplierOrderRequest) ExpectedDate() (*time.Time, error) {
	if r.ExpectedDeliveryDate == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, r.ExpectedDeliveryDate)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

type UpdateSupplierOrderStatusRequest struct {
	Status string `json:"status"`
}

type ListSupplierOrdersRequest struct {
	Status     string `form:"status"`
	SupplierID string `form:"supplier_id"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

func (r ListSupplierOrdersRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.In(StatusPending, StatusShipped, StatusReceived, StatusCancelled)),
		validation.Field(&r.SupplierID, is.UUID),
		validation.Field(&r.Page, validation.Min(0)),
		validation.Field(&r.Limit, validation.Min(0), validation.Max(100)),
	)
}

type ListSupplierOrdersResponse struct {
	Orders []SupplierOrder `json:"orders"`
	Total  int             `json:"total"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
}
