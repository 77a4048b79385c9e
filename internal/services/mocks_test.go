package services_test

import (
	"context"

	"storefront/internal/dto"
	"storefront/internal/models"
	"storefront/pkg/rabbitmq"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	return userResult(m.Called(username))
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	return userResult(m.Called(email))
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	return userResult(m.Called(id))
}

func userResult(args mock.Arguments) (*models.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockCategoryRepository is a mock implementation of repositories.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(page dto.PageRequest) ([]models.Category, int64, error) {
	args := m.Called(page)
	return args.Get(0).([]models.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryRepository) GetByID(id uint) (*models.Category, error) {
	return categoryResult(m.Called(id))
}

func (m *MockCategoryRepository) FindByName(name string) (*models.Category, error) {
	return categoryResult(m.Called(name))
}

func (m *MockCategoryRepository) Create(category *models.Category) error {
	return m.Called(category).Error(0)
}

func (m *MockCategoryRepository) Update(category *models.Category) error {
	return m.Called(category).Error(0)
}

func (m *MockCategoryRepository) Delete(id uint) error {
	return m.Called(id).Error(0)
}

func categoryResult(args mock.Arguments) (*models.Category, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) List(page dto.PageRequest) ([]models.Product, int64, error) {
	args := m.Called(page)
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) ListByCategory(categoryID uint, page dto.PageRequest) ([]models.Product, int64, error) {
	args := m.Called(categoryID, page)
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Search(keyword string, page dto.PageRequest) ([]models.Product, int64, error) {
	args := m.Called(keyword, page)
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ids []uint) ([]models.Product, error) {
	args := m.Called(ids)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsInCategory(categoryID uint, name string) (bool, error) {
	args := m.Called(categoryID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) CountByCategory(categoryID uint) (int64, error) {
	args := m.Called(categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	return m.Called(product).Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	return m.Called(product).Error(0)
}

func (m *MockProductRepository) Delete(id uint) error {
	return m.Called(id).Error(0)
}

func (m *MockProductRepository) DecrementStock(id uint, quantity int) error {
	return m.Called(id, quantity).Error(0)
}

// MockAddressRepository is a mock implementation of repositories.AddressRepository
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) GetAll() ([]models.Address, error) {
	args := m.Called()
	return args.Get(0).([]models.Address), args.Error(1)
}

func (m *MockAddressRepository) GetByID(id uint) (*models.Address, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Address), args.Error(1)
}

func (m *MockAddressRepository) ListByUser(userID uint) ([]models.Address, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Address), args.Error(1)
}

func (m *MockAddressRepository) Create(address *models.Address) error {
	return m.Called(address).Error(0)
}

func (m *MockAddressRepository) Update(address *models.Address) error {
	return m.Called(address).Error(0)
}

func (m *MockAddressRepository) Delete(id uint) error {
	return m.Called(id).Error(0)
}

// MockOrderEventPublisher is a mock implementation of services.OrderEventPublisher
type MockOrderEventPublisher struct {
	mock.Mock
}

func (m *MockOrderEventPublisher) PublishOrderPlaced(ctx context.Context, event rabbitmq.OrderPlacedEvent) error {
	return m.Called(ctx, event).Error(0)
}
