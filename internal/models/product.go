package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultProductImage is assigned to products until an image is uploaded.
const DefaultProductImage = "default.png"

var hundred = decimal.NewFromInt(100)

// Product represents a product in the store.
// SpecialPrice is derived from Price and Discount whenever either changes and
// is stored, not recomputed on read.
type Product struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	CategoryID   uint            `json:"category_id" gorm:"not null;uniqueIndex:idx_products_category_name"`
	Name         string          `json:"name" gorm:"type:varchar(100);not null;uniqueIndex:idx_products_category_name"`
	Description  string          `json:"description" gorm:"type:varchar(500)"`
	Image        string          `json:"image" gorm:"type:varchar(255)"`
	Quantity     int             `json:"quantity" gorm:"not null;default:0"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Discount     decimal.Decimal `json:"discount" gorm:"type:decimal(5,2);not null"`
	SpecialPrice decimal.Decimal `json:"special_price" gorm:"type:decimal(12,2);not null"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ApplyDiscount recomputes SpecialPrice as price - price*discount/100.
func (p *Product) ApplyDiscount() {
	p.SpecialPrice = p.Price.Sub(p.Price.Mul(p.Discount).Div(hundred)).Round(2)
}
