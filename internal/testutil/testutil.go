// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"storefront/internal/database"
	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB opens a private in-memory SQLite database with the full schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps every statement on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// Money parses a decimal literal.
func Money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// SeedUser inserts a user with the given email.
func SeedUser(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: email, Password: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(user).Error)
	return user
}

// SeedCategory inserts a category.
func SeedCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

// SeedProduct inserts a product priced at price with the given stock.
func SeedProduct(t *testing.T, db *gorm.DB, categoryID uint, name, price string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID: categoryID,
		Name:       name,
		Image:      models.DefaultProductImage,
		Quantity:   stock,
		Price:      Money(price),
		Discount:   decimal.Zero,
	}
	product.ApplyDiscount()
	require.NoError(t, db.Create(product).Error)
	return product
}

// SeedAddress inserts an address for user.
func SeedAddress(t *testing.T, db *gorm.DB, userID uint) *models.Address {
	t.Helper()
	address := &models.Address{
		UserID:       userID,
		Street:       "Baker Street",
		BuildingName: "221B House",
		City:         "London",
		State:        "Greater London",
		Country:      "United Kingdom",
		ZipCode:      "NW16XE",
	}
	require.NoError(t, db.Create(address).Error)
	return address
}

// SeedCart inserts a cart for user holding quantity units of each product,
// priced at the product's special price, and sets the cart total to match.
func SeedCart(t *testing.T, db *gorm.DB, userID uint, lines map[*models.Product]int) *models.Cart {
	t.Helper()
	cart := &models.Cart{UserID: userID, TotalPrice: decimal.Zero}
	require.NoError(t, db.Create(cart).Error)

	total := decimal.Zero
	for product, quantity := range lines {
		item := models.CartItem{
			CartID:       cart.ID,
			ProductID:    product.ID,
			Quantity:     quantity,
			Discount:     product.Discount,
			ProductPrice: product.SpecialPrice,
		}
		require.NoError(t, db.Omit("Product").Create(&item).Error)
		total = total.Add(item.LineTotal())
	}
	cart.TotalPrice = total
	require.NoError(t, db.Model(cart).Update("total_price", total).Error)
	return cart
}
