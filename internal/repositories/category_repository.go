package repositories

import (
	"errors"

	"storefront/internal/apperror"
	"storefront/internal/dto"
	"storefront/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	List(page dto.PageRequest) ([]models.Category, int64, error)
	GetByID(id uint) (*models.Category, error)
	// FindByName returns nil when no category has the name.
	FindByName(name string) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
}

var categorySortColumns = map[string]string{
	"id":   "id",
	"name": "name",
}

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

func (r *GORMCategoryRepository) List(page dto.PageRequest) ([]models.Category, int64, error) {
	var total int64
	if err := r.db.Model(&models.Category{}).Count(&total).Error; err != nil {
		return nil, 0, apperror.Persistence("count categories", err)
	}
	var categories []models.Category
	if err := r.db.Scopes(paginate(page, categorySortColumns)).Find(&categories).Error; err != nil {
		return nil, 0, apperror.Persistence("list categories", err)
	}
	return categories, total, nil
}

func (r *GORMCategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Category", "categoryId", id)
		}
		return nil, apperror.Persistence("get category", err)
	}
	return &category, nil
}

func (r *GORMCategoryRepository) FindByName(name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("name = ?", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Persistence("find category by name", err)
	}
	return &category, nil
}

func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return apperror.Persistence("create category", err)
	}
	return nil
}

func (r *GORMCategoryRepository) Update(category *models.Category) error {
	if err := r.db.Model(category).Update("name", category.Name).Error; err != nil {
		return apperror.Persistence("update category", err)
	}
	return nil
}

func (r *GORMCategoryRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Category{}, id)
	if res.Error != nil {
		return apperror.Persistence("delete category", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("Category", "categoryId", id)
	}
	return nil
}
