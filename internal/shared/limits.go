package shared

import (
	"math"

	"github.com/shopspring/decimal"
)

// Upper bounds of the numeric columns. Requests are checked against these
// so an oversized value is a validation error instead of a storage failure.
const (
	// MaxQuantity fits INTEGER (stock_quantity, quantity, reorder_threshold)
	MaxQuantity = math.MaxInt32

	// MoneyScale is the number of fraction digits stored for money
	MoneyScale = 2
)

var (
	// MaxPrice fits NUMERIC(10,2)
	MaxPrice = decimal.New(9999999999, -MoneyScale)
	// MaxOrderTotal fits NUMERIC(12,2)
	MaxOrderTotal = decimal.New(999999999999, -MoneyScale)
)
