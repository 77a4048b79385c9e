package repositories

import (
	"errors"

	"storefront/internal/apperror"
	"storefront/internal/models"

	"gorm.io/gorm"
)

// AddressRepository defines the interface for address data access.
type AddressRepository interface {
	GetAll() ([]models.Address, error)
	GetByID(id uint) (*models.Address, error)
	ListByUser(userID uint) ([]models.Address, error)
	Create(address *models.Address) error
	Update(address *models.Address) error
	Delete(id uint) error
}

// GORMAddressRepository is a GORM implementation of AddressRepository.
type GORMAddressRepository struct {
	db *gorm.DB
}

// NewGORMAddressRepository creates a new instance of GORMAddressRepository.
func NewGORMAddressRepository(db *gorm.DB) *GORMAddressRepository {
	return &GORMAddressRepository{db: db}
}

func (r *GORMAddressRepository) GetAll() ([]models.Address, error) {
	var addresses []models.Address
	if err := r.db.Order("id").Find(&addresses).Error; err != nil {
		return nil, apperror.Persistence("get all addresses", err)
	}
	return addresses, nil
}

func (r *GORMAddressRepository) GetByID(id uint) (*models.Address, error) {
	var address models.Address
	if err := r.db.First(&address, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Address", "addressId", id)
		}
		return nil, apperror.Persistence("get address", err)
	}
	return &address, nil
}

func (r *GORMAddressRepository) ListByUser(userID uint) ([]models.Address, error) {
	var addresses []models.Address
	if err := r.db.Where("user_id = ?", userID).Order("id").Find(&addresses).Error; err != nil {
		return nil, apperror.Persistence("list addresses", err)
	}
	return addresses, nil
}

func (r *GORMAddressRepository) Create(address *models.Address) error {
	if err := r.db.Create(address).Error; err != nil {
		return apperror.Persistence("create address", err)
	}
	return nil
}

func (r *GORMAddressRepository) Update(address *models.Address) error {
	err := r.db.Model(address).Select(
		"street", "building_name", "city", "state", "country", "zip_code",
	).Updates(address).Error
	if err != nil {
		return apperror.Persistence("update address", err)
	}
	return nil
}

// Delete soft-deletes the address so orders that reference it still resolve.
func (r *GORMAddressRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Address{}, id)
	if res.Error != nil {
		return apperror.Persistence("delete address", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("Address", "addressId", id)
	}
	return nil
}
