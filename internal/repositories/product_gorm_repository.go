package repositories

import (
	"errors"
	"strings"

	"storefront/internal/apperror"
	"storefront/internal/dto"
	"storefront/internal/models"

	"gorm.io/gorm"
)

var productSortColumns = map[string]string{
	"id":           "id",
	"name":         "name",
	"price":        "price",
	"specialPrice": "special_price",
	"quantity":     "quantity",
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves every product ordered by id.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("id").Find(&products).Error; err != nil {
		return nil, apperror.Persistence("get all products", err)
	}
	return products, nil
}

// List retrieves one page of all products.
func (r *GORMProductRepository) List(page dto.PageRequest) ([]models.Product, int64, error) {
	return r.findPage(r.db.Model(&models.Product{}), page)
}

// ListByCategory retrieves one page of the products in a category.
func (r *GORMProductRepository) ListByCategory(categoryID uint, page dto.PageRequest) ([]models.Product, int64, error) {
	return r.findPage(r.db.Model(&models.Product{}).Where("category_id = ?", categoryID), page)
}

// Search retrieves one page of products whose name contains keyword,
// ignoring case.
func (r *GORMProductRepository) Search(keyword string, page dto.PageRequest) ([]models.Product, int64, error) {
	pattern := "%" + strings.ToLower(keyword) + "%"
	return r.findPage(r.db.Model(&models.Product{}).Where("LOWER(name) LIKE ?", pattern), page)
}

func (r *GORMProductRepository) findPage(query *gorm.DB, page dto.PageRequest) ([]models.Product, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, apperror.Persistence("count products", err)
	}
	var products []models.Product
	if err := query.Scopes(paginate(page, productSortColumns)).Find(&products).Error; err != nil {
		return nil, 0, apperror.Persistence("list products", err)
	}
	return products, total, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Product", "productId", id)
		}
		return nil, apperror.Persistence("get product", err)
	}
	return &product, nil
}

func (r *GORMProductRepository) FindByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Order("id").Find(&products).Error; err != nil {
		return nil, apperror.Persistence("find products", err)
	}
	return products, nil
}

// ExistsInCategory reports whether the category already holds a product
// called name.
func (r *GORMProductRepository) ExistsInCategory(categoryID uint, name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Product{}).
		Where("category_id = ? AND name = ?", categoryID, name).
		Count(&count).Error
	if err != nil {
		return false, apperror.Persistence("check product name", err)
	}
	return count > 0, nil
}

// CountByCategory counts the products in a category.
func (r *GORMProductRepository) CountByCategory(categoryID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, apperror.Persistence("count products in category", err)
	}
	return count, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return apperror.Persistence("create product", err)
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product) // Save writes every field, including zero values
	if res.Error != nil {
		return apperror.Persistence("update product", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("Product", "productId", product.ID)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return apperror.Persistence("delete product", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("Product", "productId", id)
	}
	return nil
}

// DecrementStock lowers stock with a single guarded UPDATE so that two
// concurrent checkouts cannot both take the last units.
func (r *GORMProductRepository) DecrementStock(id uint, quantity int) error {
	res := r.db.Model(&models.Product{}).
		Where("id = ? AND quantity >= ?", id, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		return apperror.Persistence("decrement stock", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.Business("insufficient stock for product %d (requested: %d)", id, quantity)
	}
	return nil
}
