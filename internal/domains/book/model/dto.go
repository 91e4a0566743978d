package model

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"librobuddy-backend/internal/shared"
)

// ISBN-10 or ISBN-13, hyphens stripped before matching
var isbnPattern = regexp.MustCompile(`^(\d{9}[\dX]|\d{13})$`)

// priceRule keeps a price storable as NUMERIC(10,2): non-negative, at most 2 decimals
var priceRule = validation.By(func(value interface{}) error {
	var d decimal.Decimal
	switch v := value.(type) {
	case decimal.Decimal:
		d = v
	case *decimal.Decimal:
		if v == nil {
			return nil
		}
		d = *v
	default:
		return nil
	}

	switch {
	case d.IsNegative():
		return validation.NewError("validation_negative_price", "must not be negative")
	case d.GreaterThan(shared.MaxPrice):
		return validation.NewError("validation_price_too_large", "must be no greater than "+shared.MaxPrice.StringFixed(shared.MoneyScale))
	case !d.Equal(d.Round(shared.MoneyScale)):
		return validation.NewError("validation_price_scale", "must have at most 2 decimal places")
	}
	return nil
})

func normalizeISBN(isbn string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(isbn), "-", ""))
}

type CreateBookRequest struct {
	Title            string          `json:"title"`
	Author           string          `json:"author"`
	ISBN             string          `json:"isbn"`
	CategoryID       *uuid.UUID      `json:"category_id"`
	Price            decimal.Decimal `json:"price"`
	StockQuantity    int             `json:"stock_quantity"`
	ReorderThreshold *int            `json:"reorder_threshold"`
}

func (r *CreateBookRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
	r.ISBN = normalizeISBN(r.ISBN)
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Author, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.ISBN, validation.Required, validation.Match(isbnPattern)),
		validation.Field(&r.Price, priceRule),
		validation.Field(&r.StockQuantity, validation.Min(0), validation.Max(shared.MaxQuantity)),
		validation.Field(&r.ReorderThreshold, validation.Min(0), validation.Max(shared.MaxQuantity)),
	)
}

// UpdateBookRequest is a partial update; nil fields are left unchanged.
// Stock is not editable here: it only moves through orders and supplier receipts.
type UpdateBookRequest struct {
	Title            *string          `json:"title"`
	Author           *string          `json:"author"`
	ISBN             *string          `json:"isbn"`
	CategoryID       *uuid.UUID       `json:"category_id"`
	Price            *decimal.Decimal `json:"price"`
	ReorderThreshold *int             `json:"reorder_threshold"`
}

func (r *UpdateBookRequest) Normalize() {
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		r.Title = &t
	}
	if r.Author != nil {
		a := strings.TrimSpace(*r.Author)
		r.Author = &a
	}
	if r.ISBN != nil {
		i := normalizeISBN(*r.ISBN)
		r.ISBN = &i
	}
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Author, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.ISBN, validation.NilOrNotEmpty, validation.Match(isbnPattern)),
		validation.Field(&r.Price, priceRule),
		validation.Field(&r.ReorderThreshold, validation.Min(0), validation.Max(shared.MaxQuantity)),
	)
}

// Apply copies the set fields onto b
func (r UpdateBookRequest) Apply(b *Book) {
	if r.Title != nil {
		b.Title = *r.Title
	}
	if r.Author != nil {
		b.Author = *r.Author
	}
	if r.ISBN != nil {
		b.ISBN = *r.ISBN
	}
	if r.CategoryID != nil {
		id := *r.CategoryID
		b.CategoryID = &id
	}
	if r.Price != nil {
		b.Price = *r.Price
	}
	if r.ReorderThreshold != nil {
		b.ReorderThreshold = *r.ReorderThreshold
	}
}

// BookFilter is the list query for books
type BookFilter struct {
	Search     string
	CategoryID *uuid.UUID
	Page       int
	Limit      int
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
	)
}
