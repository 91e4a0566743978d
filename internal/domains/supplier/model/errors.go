package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"librobuddy-backend/internal/shared/response"
	"librobuddy-backend/pkg/logger"
)

var (
	ErrSupplierOrderNotFound = errors.New("supplier order not found")
	ErrInvalidStatus         = errors.New("invalid status value")
	ErrSupplierNotFound      = errors.New("supplier not found")
	ErrBookNotFound          = errors.New("book not found")
	ErrSupplierEmailExists   = errors.New("supplier contact email already exists")
	ErrValueOutOfRange       = errors.New("value out of range")
	ErrStockLimitExceeded    = errors.New("receipt would exceed the stock limit")
)

var supplierErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrSupplierOrderNotFound: {Status: http.StatusNotFound, Code: "SUP001", Message: "The specified supplier order does not exist"},
	ErrInvalidStatus:         {Status: http.StatusBadRequest, Code: "SUP002", Message: "Status must be one of Pending, Shipped, Received, Cancelled"},
	ErrSupplierNotFound:      {Status: http.StatusNotFound, Code: "SUP003", Message: "The specified supplier does not exist"},
	ErrBookNotFound:          {Status: http.StatusNotFound, Code: "SUP004", Message: "The specified book does not exist"},
	ErrSupplierEmailExists:   {Status: http.StatusConflict, Code: "SUP005", Message: "A supplier with this contact email already exists"},
	ErrValueOutOfRange:       {Status: http.StatusBadRequest, Code: "SUP006", Message: "A numeric value is outside the storable range"},
	ErrStockLimitExceeded:    {Status: http.StatusConflict, Code: "SUP007", Message: "Receiving this order would exceed the stock limit of the book"},
}

// HandleSupplierError writes the error response and reports whether err was non-nil
func HandleSupplierError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ValidationError(c, verrs)
		return true
	}

	for target, info := range supplierErrorMap {
		if errors.Is(err, target) {
			response.ErrorResponse(c, info.Status, info.Code, info.Message)
			return true
		}
	}

	logger.Error("supplier handler: internal error", err)
	response.InternalServerError(c, "Internal server error")
	return true
}
