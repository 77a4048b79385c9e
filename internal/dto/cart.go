package dto

import (
	"storefront/internal/models"

	"github.com/shopspring/decimal"
)

// CartLine is one product in a cart response.
type CartLine struct {
	ProductID    uint            `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Image        string          `json:"image"`
	Quantity     int             `json:"quantity"`
	ProductPrice decimal.Decimal `json:"product_price"`
	Discount     decimal.Decimal `json:"discount"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// CartResponse is a cart together with its lines.
type CartResponse struct {
	CartID     uint            `json:"cart_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Products   []CartLine      `json:"products"`
}

// NewCartResponse builds the response for cart with the given items.
func NewCartResponse(cart *models.Cart, items []models.CartItem) CartResponse {
	resp := CartResponse{
		CartID:     cart.ID,
		TotalPrice: cart.TotalPrice,
		Products:   make([]CartLine, 0, len(items)),
	}
	for _, item := range items {
		resp.Products = append(resp.Products, CartLine{
			ProductID:    item.ProductID,
			ProductName:  item.Product.Name,
			Image:        item.Product.Image,
			Quantity:     item.Quantity,
			ProductPrice: item.ProductPrice,
			Discount:     item.Discount,
			LineTotal:    item.LineTotal(),
		})
	}
	return resp
}
