package repositories

import (
	"errors"

	"storefront/internal/apperror"
	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// Create inserts the order row. Address, payment and items are persisted
// separately and only referenced by id here.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if err := r.db.Omit(clause.Associations).Create(order).Error; err != nil {
		return apperror.Persistence("save order", err)
	}
	return nil
}

// CreateItems inserts all items in one batch.
func (r *GORMOrderRepository) CreateItems(items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	if err := r.db.Create(&items).Error; err != nil {
		return apperror.Persistence("save order items", err)
	}
	return nil
}

// GetByID retrieves an order with its items and payment.
func (r *GORMOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id") }).
		Preload("Payment").
		Preload("Address", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Order", "orderId", id)
		}
		return nil, apperror.Persistence("get order", err)
	}
	return &order, nil
}

// ListByEmail retrieves a user's orders, newest first.
func (r *GORMOrderRepository) ListByEmail(email string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id") }).
		Preload("Payment").
		Where("email = ?", email).
		Order("id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, apperror.Persistence("list orders", err)
	}
	return orders, nil
}

// UpdateStatus updates the status of an order.
func (r *GORMOrderRepository) UpdateStatus(id uint, status string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("order_status", status)
	if res.Error != nil {
		return apperror.Persistence("update order status", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("Order", "orderId", id)
	}
	return nil
}

// GORMPaymentRepository is a GORM implementation of PaymentRepository.
type GORMPaymentRepository struct {
	db *gorm.DB
}

// NewGORMPaymentRepository creates a new instance of GORMPaymentRepository.
func NewGORMPaymentRepository(db *gorm.DB) *GORMPaymentRepository {
	return &GORMPaymentRepository{db: db}
}

func (r *GORMPaymentRepository) Create(payment *models.Payment) error {
	if err := r.db.Create(payment).Error; err != nil {
		return apperror.Persistence("save payment", err)
	}
	return nil
}
