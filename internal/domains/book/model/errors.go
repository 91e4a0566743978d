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
	ErrBookNotFound          = errors.New("book not found")
	ErrISBNAlreadyExists     = errors.New("ISBN already exists")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrBookHasSupplierOrders = errors.New("book has supplier orders and cannot be deleted")
	ErrValueOutOfRange       = errors.New("value out of range")
)

var bookErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrBookNotFound:          {Status: http.StatusNotFound, Code: "BOOK001", Message: "The specified book does not exist"},
	ErrISBNAlreadyExists:     {Status: http.StatusConflict, Code: "BOOK002", Message: "This ISBN is already registered"},
	ErrCategoryNotFound:      {Status: http.StatusBadRequest, Code: "BOOK003", Message: "The specified category does not exist"},
	ErrCategoryAlreadyExists: {Status: http.StatusConflict, Code: "BOOK004", Message: "A category with this name already exists"},
	ErrBookHasSupplierOrders: {Status: http.StatusConflict, Code: "BOOK005", Message: "The book is referenced by supplier orders"},
	ErrInsufficientStock:     {Status: http.StatusConflict, Code: "BOOK006", Message: "Not enough stock"},
	ErrValueOutOfRange:       {Status: http.StatusBadRequest, Code: "BOOK007", Message: "A numeric value is outside the storable range"},
}

// HandleBookError writes the error response and reports whether err was non-nil
func HandleBookError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ValidationError(c, verrs)
		return true
	}

	for target, info := range bookErrorMap {
		if errors.Is(err, target) {
			response.ErrorResponse(c, info.Status, info.Code, info.Message)
			return true
		}
	}

	logger.Error("book handler: internal error", err)
	response.InternalServerError(c, "Internal server error")
	return true
}
