package services

import (
	"storefront/internal/apperror"
	"storefront/internal/dto"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo repositories.CategoryRepository, productRepo repositories.ProductRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// ListCategories returns one page of categories.
func (s *CategoryService) ListCategories(page dto.PageRequest) (dto.Page[models.Category], error) {
	page = page.Normalize("id")
	categories, total, err := s.categoryRepo.List(page)
	if err != nil {
		return dto.Page[models.Category]{}, err
	}
	if len(categories) == 0 {
		return dto.Page[models.Category]{}, apperror.NotFound("Category", "pageNumber", page.PageNumber)
	}
	return dto.NewPage(categories, page, total), nil
}

// CreateCategory creates a category with a unique name.
func (s *CategoryService) CreateCategory(name string) (*models.Category, error) {
	existing, err := s.categoryRepo.FindByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Business("Category with the name %s already exists", name)
	}

	category := &models.Category{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory renames a category.
func (s *CategoryService) UpdateCategory(id uint, name string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	existing, err := s.categoryRepo.FindByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, apperror.Business("Category with the name %s already exists", name)
	}

	category.Name = name
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory deletes an empty category.
func (s *CategoryService) DeleteCategory(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	count, err := s.productRepo.CountByCategory(id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperror.Business("Category %s still has %d products", category.Name, count)
	}
	if err := s.categoryRepo.Delete(id); err != nil {
		return nil, err
	}
	return category, nil
}
