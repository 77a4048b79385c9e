package dto

import (
	"github.com/shopspring/decimal"
)

// ProductRequest is the body for creating or updating a product.
// Price and Discount are checked by the service; validator cannot see
// inside decimal values.
type ProductRequest struct {
	Name        string          `json:"name" validate:"required,min=3,max=100"`
	Description string          `json:"description" validate:"required,min=6,max=500"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
}
