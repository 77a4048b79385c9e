package repositories_test

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/apperror"
	"storefront/internal/dto"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_DecrementStock(t *testing.T) {
	db := testutil.NewDB(t)
	category := testutil.SeedCategory(t, db, "Peripherals")
	product := testutil.SeedProduct(t, db, category.ID, "Keyboard", "75.00", 3)
	repo := repositories.NewGORMProductRepository(db)

	require.NoError(t, repo.DecrementStock(product.ID, 2))

	err := repo.DecrementStock(product.ID, 2)
	var be *apperror.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Contains(t, be.Reason, "insufficient stock")

	fetched, err := repo.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fetched.Quantity, "failed decrement must leave stock untouched")
}

func TestProductRepository_GetByIDNotFound(t *testing.T) {
	repo := repositories.NewGORMProductRepository(testutil.NewDB(t))

	_, err := repo.GetByID(99)
	var nf *apperror.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Product", nf.Resource)
}

func TestProductRepository_ListSearchAndCategory(t *testing.T) {
	db := testutil.NewDB(t)
	peripherals := testutil.SeedCategory(t, db, "Peripherals")
	computers := testutil.SeedCategory(t, db, "Computers")
	testutil.SeedProduct(t, db, peripherals.ID, "Keyboard", "75.00", 25)
	testutil.SeedProduct(t, db, peripherals.ID, "Mouse", "25.00", 50)
	testutil.SeedProduct(t, db, computers.ID, "Gaming Laptop", "1200.00", 10)
	repo := repositories.NewGORMProductRepository(db)

	page := dto.PageRequest{PageSize: 2, SortBy: "price", SortOrder: dto.SortDesc}
	products, total, err := repo.List(page)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, products, 2)
	assert.Equal(t, "Gaming Laptop", products[0].Name)
	assert.Equal(t, "Keyboard", products[1].Name)

	products, total, err = repo.ListByCategory(peripherals.ID, dto.PageRequest{PageSize: 10, SortBy: "name"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "Keyboard", products[0].Name)

	products, total, err = repo.Search("LAPTOP", dto.PageRequest{PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Gaming Laptop", products[0].Name)

	exists, err := repo.ExistsInCategory(peripherals.ID, "Mouse")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.ExistsInCategory(computers.ID, "Mouse")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProductRepository_UnknownSortFallsBackToID(t *testing.T) {
	db := testutil.NewDB(t)
	category := testutil.SeedCategory(t, db, "Peripherals")
	first := testutil.SeedProduct(t, db, category.ID, "Zebra Pad", "5.00", 1)
	testutil.SeedProduct(t, db, category.ID, "Alpha Pad", "6.00", 1)
	repo := repositories.NewGORMProductRepository(db)

	products, _, err := repo.List(dto.PageRequest{PageSize: 10, SortBy: "name; DROP TABLE products"})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, first.ID, products[0].ID)
}

func TestCartRepository_ItemsAndEmailLookup(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.SeedUser(t, db, "alice", "alice@example.com")
	testutil.SeedUser(t, db, "bob", "bob@example.com")
	category := testutil.SeedCategory(t, db, "Travel Gear")
	pillow := testutil.SeedProduct(t, db, category.ID, "Travel Pillow", "19.99", 10)
	seeded := testutil.SeedCart(t, db, alice.ID, map[*models.Product]int{pillow: 2})
	repo := repositories.NewGORMCartRepository(db)

	cart, err := repo.FindByUserEmail("alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Equal(t, seeded.ID, cart.ID)
	assert.True(t, testutil.Money("39.98").Equal(cart.TotalPrice))

	missing, err := repo.FindByUserEmail("bob@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	items, err := repo.Items(cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Travel Pillow", items[0].Product.Name)
	assert.Equal(t, 2, items[0].Quantity)

	ids, err := repo.CartIDsWithProduct(pillow.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{cart.ID}, ids)

	require.NoError(t, repo.DeleteItem(cart.ID, pillow.ID))
	err = repo.DeleteItem(cart.ID, pillow.ID)
	var nf *apperror.NotFoundError
	assert.ErrorAs(t, err, &nf)

	item, err := repo.FindItem(cart.ID, pillow.ID)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestAddressRepository_SoftDelete(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, "alice", "alice@example.com")
	address := testutil.SeedAddress(t, db, user.ID)
	repo := repositories.NewGORMAddressRepository(db)

	require.NoError(t, repo.Delete(address.ID))

	_, err := repo.GetByID(address.ID)
	var nf *apperror.NotFoundError
	require.ErrorAs(t, err, &nf)

	var raw models.Address
	require.NoError(t, db.Unscoped().First(&raw, address.ID).Error)
	assert.True(t, raw.DeletedAt.Valid)
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	db := testutil.NewDB(t)
	uow := repositories.NewGORMUnitOfWork(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := uow.Execute(ctx, func(store *repositories.Store) error {
		if err := store.Payments.Create(&models.Payment{PaymentMethod: "card"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&count).Error)
	assert.Zero(t, count)

	err = uow.Execute(ctx, func(store *repositories.Store) error {
		return store.Payments.Create(&models.Payment{PaymentMethod: "card"})
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Payment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
