package repositories

import (
	"storefront/internal/dto"
	"storefront/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	List(page dto.PageRequest) ([]models.Product, int64, error)
	ListByCategory(categoryID uint, page dto.PageRequest) ([]models.Product, int64, error)
	Search(keyword string, page dto.PageRequest) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	// FindByIDs returns the products that still exist among ids.
	FindByIDs(ids []uint) ([]models.Product, error)
	ExistsInCategory(categoryID uint, name string) (bool, error)
	CountByCategory(categoryID uint) (int64, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	// DecrementStock removes quantity units from the product's stock, failing
	// without change when fewer than quantity units remain.
	DecrementStock(id uint, quantity int) error
}
