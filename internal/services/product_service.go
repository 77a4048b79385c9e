package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"

	"storefront/internal/apperror"
	"storefront/internal/dto"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
)

const defaultProductSort = "id"

var maxDiscount = decimal.NewFromInt(100)

// ProductService handles business logic related to products.
type ProductService struct {
	uow   repositories.UnitOfWork
	cache *ProductCache
	files *FileService
}

// NewProductService creates a new ProductService. cache may be nil.
func NewProductService(uow repositories.UnitOfWork, cache *ProductCache, files *FileService) *ProductService {
	return &ProductService{
		uow:   uow,
		cache: cache,
		files: files,
	}
}

// AddProduct creates a product in a category. Names are unique per category.
func (s *ProductService) AddProduct(ctx context.Context, categoryID uint, req dto.ProductRequest) (*models.Product, error) {
	if err := validatePricing(req); err != nil {
		return nil, err
	}

	store := s.uow.Store(ctx)
	if _, err := store.Categories.GetByID(categoryID); err != nil {
		return nil, err
	}
	exists, err := store.Products.ExistsInCategory(categoryID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Business("Product %s already exists in this category", req.Name)
	}

	product := &models.Product{
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
		Image:       models.DefaultProductImage,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Discount:    req.Discount,
	}
	product.ApplyDiscount()

	if err := store.Products.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListProducts returns one page of all products.
func (s *ProductService) ListProducts(ctx context.Context, page dto.PageRequest) (dto.Page[models.Product], error) {
	page = page.Normalize(defaultProductSort)
	products, total, err := s.uow.Store(ctx).Products.List(page)
	if err != nil {
		return dto.Page[models.Product]{}, err
	}
	if len(products) == 0 {
		return dto.Page[models.Product]{}, apperror.NotFound("Product", "pageNumber", page.PageNumber)
	}
	return dto.NewPage(products, page, total), nil
}

// ProductsByCategory returns one page of the products in a category.
func (s *ProductService) ProductsByCategory(ctx context.Context, categoryID uint, page dto.PageRequest) (dto.Page[models.Product], error) {
	page = page.Normalize(defaultProductSort)
	store := s.uow.Store(ctx)
	if _, err := store.Categories.GetByID(categoryID); err != nil {
		return dto.Page[models.Product]{}, err
	}
	products, total, err := store.Products.ListByCategory(categoryID, page)
	if err != nil {
		return dto.Page[models.Product]{}, err
	}
	if len(products) == 0 {
		return dto.Page[models.Product]{}, apperror.NotFound("Product", "categoryId", categoryID)
	}
	return dto.NewPage(products, page, total), nil
}

// SearchProducts returns one page of products whose name contains keyword.
func (s *ProductService) SearchProducts(ctx context.Context, keyword string, page dto.PageRequest) (dto.Page[models.Product], error) {
	page = page.Normalize(defaultProductSort)
	products, total, err := s.uow.Store(ctx).Products.Search(keyword, page)
	if err != nil {
		return dto.Page[models.Product]{}, err
	}
	if len(products) == 0 {
		return dto.Page[models.Product]{}, apperror.NotFound("Product", "keyword", keyword)
	}
	return dto.NewPage(products, page, total), nil
}

// GetProduct retrieves a single product, consulting the cache first.
func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	if product, ok := s.cache.Get(ctx, id); ok {
		return product, nil
	}
	product, err := s.uow.Store(ctx).Products.GetByID(id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, product)
	return product, nil
}

// UpdateProduct replaces a product's details and re-prices every cart that
// holds it, all in one transaction.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, req dto.ProductRequest) (*models.Product, error) {
	if err := validatePricing(req); err != nil {
		return nil, err
	}

	var updated *models.Product
	err := s.uow.Execute(ctx, func(store *repositories.Store) error {
		product, err := store.Products.GetByID(id)
		if err != nil {
			return err
		}
		if req.Name != product.Name {
			exists, err := store.Products.ExistsInCategory(product.CategoryID, req.Name)
			if err != nil {
				return err
			}
			if exists {
				return apperror.Business("Product %s already exists in this category", req.Name)
			}
		}

		product.Name = req.Name
		product.Description = req.Description
		product.Quantity = req.Quantity
		product.Price = req.Price
		product.Discount = req.Discount
		product.ApplyDiscount()
		if err := store.Products.Update(product); err != nil {
			return err
		}

		cartIDs, err := store.Carts.CartIDsWithProduct(product.ID)
		if err != nil {
			return err
		}
		for _, cartID := range cartIDs {
			if err := repriceCartItem(store, cartID, product); err != nil {
				return err
			}
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, id)
	return updated, nil
}

// DeleteProduct removes a product from every cart and then deletes it.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) (*models.Product, error) {
	var deleted *models.Product
	err := s.uow.Execute(ctx, func(store *repositories.Store) error {
		product, err := store.Products.GetByID(id)
		if err != nil {
			return err
		}
		cartIDs, err := store.Carts.CartIDsWithProduct(id)
		if err != nil {
			return err
		}
		for _, cartID := range cartIDs {
			if err := removeCartItem(store, cartID, id); err != nil {
				return err
			}
		}
		if err := store.Products.Delete(id); err != nil {
			return err
		}
		deleted = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, id)
	return deleted, nil
}

// UpdateProductImage stores file and makes it the product's image.
func (s *ProductService) UpdateProductImage(ctx context.Context, id uint, file *multipart.FileHeader) (*models.Product, error) {
	store := s.uow.Store(ctx)
	product, err := store.Products.GetByID(id)
	if err != nil {
		return nil, err
	}

	name, err := s.files.SaveImage(file)
	if err != nil {
		return nil, err
	}
	product.Image = name
	if err := store.Products.Update(product); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, id)
	return product, nil
}

var exportHeader = []string{"ID", "Category ID", "Name", "Description", "Quantity", "Price", "Discount", "Special Price"}

// ExportProducts renders the whole catalog as an xlsx workbook.
func (s *ProductService) ExportProducts(ctx context.Context) ([]byte, error) {
	products, err := s.uow.Store(ctx).Products.GetAll()
	if err != nil {
		return nil, err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, title := range exportHeader {
		header.AddCell().SetValue(title)
	}
	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.CategoryID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(p.Quantity)
		row.AddCell().SetValue(p.Price.StringFixed(2))
		row.AddCell().SetValue(p.Discount.StringFixed(2))
		row.AddCell().SetValue(p.SpecialPrice.StringFixed(2))
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func validatePricing(req dto.ProductRequest) error {
	if req.Price.IsNegative() {
		return apperror.Business("price must not be negative")
	}
	if req.Discount.IsNegative() || req.Discount.GreaterThan(maxDiscount) {
		return apperror.Business("discount must be between 0 and 100")
	}
	return nil
}
