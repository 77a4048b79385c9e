package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is a user's staging area of products before checkout. TotalPrice is
// kept equal to the sum of ProductPrice*Quantity over its items by every
// mutating operation.
type Cart struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	UserID     uint            `json:"user_id" gorm:"uniqueIndex;not null"`
	TotalPrice decimal.Decimal `json:"total_price" gorm:"type:decimal(12,2);not null"`
	Items      []CartItem      `json:"items" gorm:"foreignKey:CartID"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CartItem is one product line in a cart. ProductPrice and Discount are
// snapshots of the product at the time the line was last priced.
type CartItem struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	CartID       uint            `json:"cart_id" gorm:"not null;uniqueIndex:idx_cart_items_cart_product"`
	ProductID    uint            `json:"product_id" gorm:"not null;uniqueIndex:idx_cart_items_cart_product"`
	Product      Product         `json:"product" gorm:"foreignKey:ProductID"`
	Quantity     int             `json:"quantity" gorm:"not null"`
	Discount     decimal.Decimal `json:"discount" gorm:"type:decimal(5,2);not null"`
	ProductPrice decimal.Decimal `json:"product_price" gorm:"type:decimal(12,2);not null"`
}

// LineTotal is the item's contribution to the cart total.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.ProductPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
