package services_test

import (
	"testing"

	"storefront/internal/apperror"
	"storefront/internal/dto"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	alice = services.Principal{UserID: 1, Username: "alice", Email: "alice@example.com", Role: models.RoleUser}
	bob   = services.Principal{UserID: 2, Username: "bob", Email: "bob@example.com", Role: models.RoleUser}
	admin = services.Principal{UserID: 3, Username: "root", Email: "root@example.com", Role: models.RoleAdmin}
)

var bakerStreet = dto.AddressRequest{
	Street: "Baker Street", BuildingName: "221B House", City: "London",
	State: "Greater London", Country: "United Kingdom", ZipCode: "NW16XE",
}

func TestAddressService_CreateAddress(t *testing.T) {
	repo := new(MockAddressRepository)
	service := services.NewAddressService(repo)

	repo.On("Create", mock.MatchedBy(func(a *models.Address) bool {
		return a.UserID == alice.UserID && a.City == "London"
	})).Return(nil).Once()

	address, err := service.CreateAddress(alice, bakerStreet)
	require.NoError(t, err)
	assert.Equal(t, "Baker Street", address.Street)
	repo.AssertExpectations(t)
}

func TestAddressService_OwnershipRules(t *testing.T) {
	repo := new(MockAddressRepository)
	service := services.NewAddressService(repo)
	stored := &models.Address{ID: 10, UserID: alice.UserID, Street: "Old Street"}

	repo.On("GetByID", uint(10)).Return(stored, nil)

	_, err := service.GetAddress(bob, 10)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = service.UpdateAddress(bob, 10, bakerStreet)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	err = service.DeleteAddress(bob, 10)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	repo.AssertNotCalled(t, "Delete", uint(10))

	got, err := service.GetAddress(admin, 10)
	require.NoError(t, err)
	assert.Equal(t, uint(10), got.ID)

	repo.On("Update", stored).Return(nil).Once()
	updated, err := service.UpdateAddress(alice, 10, bakerStreet)
	require.NoError(t, err)
	assert.Equal(t, "Baker Street", updated.Street)

	repo.On("Delete", uint(10)).Return(nil).Once()
	assert.NoError(t, service.DeleteAddress(alice, 10))

	repo.On("GetByID", uint(99)).Return(nil, apperror.NotFound("Address", "addressId", uint(99))).Once()
	_, err = service.GetAddress(admin, 99)
	var nf *apperror.NotFoundError
	assert.ErrorAs(t, err, &nf)

	repo.AssertExpectations(t)
}

func TestAddressService_Listings(t *testing.T) {
	repo := new(MockAddressRepository)
	service := services.NewAddressService(repo)

	repo.On("ListByUser", alice.UserID).Return([]models.Address{{ID: 10, UserID: alice.UserID}}, nil).Once()
	repo.On("GetAll").Return([]models.Address{{ID: 10}, {ID: 11}}, nil).Once()

	mine, err := service.GetUserAddresses(alice)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := service.GetAddresses()
	require.NoError(t, err)
	assert.Len(t, all, 2)
	repo.AssertExpectations(t)
}
