package services

import (
	"storefront/internal/apperror"
	"storefront/internal/dto"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// AddressService handles business logic related to shipping addresses.
// Callers other than admins can only read and change their own addresses.
type AddressService struct {
	repo repositories.AddressRepository
}

// NewAddressService creates a new AddressService.
func NewAddressService(repo repositories.AddressRepository) *AddressService {
	return &AddressService{repo: repo}
}

// CreateAddress stores a new address for the caller.
func (s *AddressService) CreateAddress(caller Principal, req dto.AddressRequest) (*models.Address, error) {
	address := &models.Address{UserID: caller.UserID}
	req.Apply(address)
	if err := s.repo.Create(address); err != nil {
		return nil, err
	}
	return address, nil
}

// GetAddresses returns every address.
func (s *AddressService) GetAddresses() ([]models.Address, error) {
	return s.repo.GetAll()
}

// GetUserAddresses returns the caller's addresses.
func (s *AddressService) GetUserAddresses(caller Principal) ([]models.Address, error) {
	return s.repo.ListByUser(caller.UserID)
}

// GetAddress returns one address.
func (s *AddressService) GetAddress(caller Principal, id uint) (*models.Address, error) {
	return s.owned(caller, id)
}

// UpdateAddress replaces an address's fields.
func (s *AddressService) UpdateAddress(caller Principal, id uint, req dto.AddressRequest) (*models.Address, error) {
	address, err := s.owned(caller, id)
	if err != nil {
		return nil, err
	}
	req.Apply(address)
	if err := s.repo.Update(address); err != nil {
		return nil, err
	}
	return address, nil
}

// DeleteAddress soft-deletes an address. Orders placed with it keep it.
func (s *AddressService) DeleteAddress(caller Principal, id uint) error {
	if _, err := s.owned(caller, id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *AddressService) owned(caller Principal, id uint) (*models.Address, error) {
	address, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && address.UserID != caller.UserID {
		return nil, apperror.ErrForbidden
	}
	return address, nil
}
