package repositories

import (
	"errors"

	"storefront/internal/apperror"
	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository defines the interface for cart and cart item data access.
// Items are never loaded implicitly; callers fetch them with Items.
type CartRepository interface {
	GetAll() ([]models.Cart, error)
	// FindByUserEmail returns nil when the user has no cart yet.
	FindByUserEmail(email string) (*models.Cart, error)
	GetByID(id uint) (*models.Cart, error)
	// Save inserts or updates the cart row itself; items are untouched.
	Save(cart *models.Cart) error
	Items(cartID uint) ([]models.CartItem, error)
	// FindItem returns nil when the product is not in the cart.
	FindItem(cartID, productID uint) (*models.CartItem, error)
	AddItem(item *models.CartItem) error
	UpdateItem(item *models.CartItem) error
	DeleteItem(cartID, productID uint) error
	CartIDsWithProduct(productID uint) ([]uint, error)
}

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// GetAll retrieves every cart with its items and their products.
func (r *GORMCartRepository) GetAll() ([]models.Cart, error) {
	var carts []models.Cart
	if err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_items.id")
	}).Preload("Items.Product").Order("id").Find(&carts).Error; err != nil {
		return nil, apperror.Persistence("get all carts", err)
	}
	return carts, nil
}

func (r *GORMCartRepository) FindByUserEmail(email string) (*models.Cart, error) {
	var cart models.Cart
	userIDs := r.db.Model(&models.User{}).Select("id").Where("email = ?", email)
	if err := r.db.Where("user_id IN (?)", userIDs).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Persistence("find cart by email", err)
	}
	return &cart, nil
}

func (r *GORMCartRepository) GetByID(id uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.First(&cart, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Cart", "cartId", id)
		}
		return nil, apperror.Persistence("get cart", err)
	}
	return &cart, nil
}

func (r *GORMCartRepository) Save(cart *models.Cart) error {
	if err := r.db.Omit(clause.Associations).Save(cart).Error; err != nil {
		return apperror.Persistence("save cart", err)
	}
	return nil
}

func (r *GORMCartRepository) Items(cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Where("cart_id = ?", cartID).Order("id").Find(&items).Error; err != nil {
		return nil, apperror.Persistence("get cart items", err)
	}
	return items, nil
}

func (r *GORMCartRepository) FindItem(cartID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Preload("Product").
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Persistence("find cart item", err)
	}
	return &item, nil
}

func (r *GORMCartRepository) AddItem(item *models.CartItem) error {
	if err := r.db.Omit(clause.Associations).Create(item).Error; err != nil {
		return apperror.Persistence("add cart item", err)
	}
	return nil
}

func (r *GORMCartRepository) UpdateItem(item *models.CartItem) error {
	err := r.db.Model(&models.CartItem{}).Where("id = ?", item.ID).Updates(map[string]any{
		"quantity":      item.Quantity,
		"discount":      item.Discount,
		"product_price": item.ProductPrice,
	}).Error
	if err != nil {
		return apperror.Persistence("update cart item", err)
	}
	return nil
}

func (r *GORMCartRepository) DeleteItem(cartID, productID uint) error {
	res := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).Delete(&models.CartItem{})
	if res.Error != nil {
		return apperror.Persistence("delete cart item", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("Product", "productId", productID)
	}
	return nil
}

func (r *GORMCartRepository) CartIDsWithProduct(productID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.CartItem{}).
		Where("product_id = ?", productID).
		Order("cart_id").
		Pluck("cart_id", &ids).Error
	if err != nil {
		return nil, apperror.Persistence("find carts with product", err)
	}
	return ids, nil
}
