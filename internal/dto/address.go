package dto

import "storefront/internal/models"

// AddressRequest is the body for creating or updating an address.
type AddressRequest struct {
	Street       string `json:"street" validate:"required,min=5"`
	BuildingName string `json:"building_name" validate:"required,min=5"`
	City         string `json:"city" validate:"required,min=4"`
	State        string `json:"state" validate:"required,min=2"`
	Country      string `json:"country" validate:"required,min=2"`
	ZipCode      string `json:"zip_code" validate:"required,min=5"`
}

// Apply copies the request fields onto address.
func (r AddressRequest) Apply(address *models.Address) {
	address.Street = r.Street
	address.BuildingName = r.BuildingName
	address.City = r.City
	address.State = r.State
	address.Country = r.Country
	address.ZipCode = r.ZipCode
}
