package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusAccepted is the status every order is created with.
const OrderStatusAccepted = "Order Accepted!"

// Payment records the payment method and the gateway's response for an order.
type Payment struct {
	ID                uint   `json:"id" gorm:"primaryKey"`
	PaymentMethod     string `json:"payment_method" gorm:"type:varchar(50);not null"`
	PGName            string `json:"pg_name" gorm:"type:varchar(100)"`
	PGPaymentID       string `json:"pg_payment_id" gorm:"type:varchar(255)"`
	PGStatus          string `json:"pg_status" gorm:"type:varchar(50)"`
	PGResponseMessage string `json:"pg_response_message" gorm:"type:varchar(500)"`
}

// Order is a placed checkout. It is immutable after creation apart from
// its status.
type Order struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Email       string          `json:"email" gorm:"type:varchar(50);index;not null"`
	OrderDate   time.Time       `json:"order_date" gorm:"not null"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2);not null"`
	OrderStatus string          `json:"order_status" gorm:"type:varchar(50);not null"`
	AddressID   uint            `json:"address_id" gorm:"not null"`
	Address     *Address        `json:"address,omitempty" gorm:"foreignKey:AddressID"`
	PaymentID   uint            `json:"payment_id" gorm:"uniqueIndex;not null"`
	Payment     *Payment        `json:"payment,omitempty" gorm:"foreignKey:PaymentID"`
	Items       []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// OrderItem is a frozen copy of a cart item taken when the order was placed.
type OrderItem struct {
	ID                  uint            `json:"id" gorm:"primaryKey"`
	OrderID             uint            `json:"order_id" gorm:"index;not null"`
	ProductID           uint            `json:"product_id" gorm:"index;not null"`
	ProductName         string          `json:"product_name" gorm:"type:varchar(100);not null"`
	Quantity            int             `json:"quantity" gorm:"not null"`
	Discount            decimal.Decimal `json:"discount" gorm:"type:decimal(5,2);not null"`
	OrderedProductPrice decimal.Decimal `json:"ordered_product_price" gorm:"type:decimal(12,2);not null"`
}
