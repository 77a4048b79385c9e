package dto

import (
	"time"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
)

// PlaceOrderRequest carries everything order placement needs. Email comes
// from the authenticated caller, the rest from the request.
type PlaceOrderRequest struct {
	Email                  string
	AddressID              uint
	PaymentMethod          string
	GatewayName            string
	GatewayPaymentID       string
	GatewayStatus          string
	GatewayResponseMessage string
}

// ProductSummary is the product as it looked when the order was placed.
type ProductSummary struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Image        string          `json:"image"`
	Price        decimal.Decimal `json:"price"`
	Discount     decimal.Decimal `json:"discount"`
	SpecialPrice decimal.Decimal `json:"special_price"`
}

// OrderItemSummary is one line of an OrderSummary.
type OrderItemSummary struct {
	OrderItemID         uint            `json:"order_item_id"`
	Product             ProductSummary  `json:"product"`
	Quantity            int             `json:"quantity"`
	Discount            decimal.Decimal `json:"discount"`
	OrderedProductPrice decimal.Decimal `json:"ordered_product_price"`
}

// OrderSummary is returned for a placed or fetched order.
type OrderSummary struct {
	OrderID     uint               `json:"order_id"`
	Email       string             `json:"email"`
	OrderDate   time.Time          `json:"order_date"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	OrderStatus string             `json:"order_status"`
	AddressID   uint               `json:"address_id"`
	Payment     models.Payment     `json:"payment"`
	Items       []OrderItemSummary `json:"order_items"`
}

// NewOrderSummary builds the summary of order. products supplies the product
// snapshot for each item by product id; items without one carry only the
// recorded name.
func NewOrderSummary(order *models.Order, products map[uint]models.Product) OrderSummary {
	summary := OrderSummary{
		OrderID:     order.ID,
		Email:       order.Email,
		OrderDate:   order.OrderDate,
		TotalAmount: order.TotalAmount,
		OrderStatus: order.OrderStatus,
		AddressID:   order.AddressID,
		Items:       make([]OrderItemSummary, 0, len(order.Items)),
	}
	if order.Payment != nil {
		summary.Payment = *order.Payment
	}
	for _, item := range order.Items {
		product := ProductSummary{ID: item.ProductID, Name: item.ProductName}
		if p, ok := products[item.ProductID]; ok {
			product = ProductSummary{
				ID:           p.ID,
				Name:         p.Name,
				Image:        p.Image,
				Price:        p.Price,
				Discount:     p.Discount,
				SpecialPrice: p.SpecialPrice,
			}
		}
		summary.Items = append(summary.Items, OrderItemSummary{
			OrderItemID:         item.ID,
			Product:             product,
			Quantity:            item.Quantity,
			Discount:            item.Discount,
			OrderedProductPrice: item.OrderedProductPrice,
		})
	}
	return summary
}

// PaymentRequest is the body of a place-order call. Gateway fields are
// recorded verbatim.
type PaymentRequest struct {
	AddressID         uint   `json:"addressId" validate:"required"`
	PGName            string `json:"pgName"`
	PGPaymentID       string `json:"pgPaymentId"`
	PGStatus          string `json:"pgStatus"`
	PGResponseMessage string `json:"pgResponseMessage"`
}

// OrderStatusRequest is the body of an order status change.
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,min=3,max=50"`
}
