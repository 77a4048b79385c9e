package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"storefront/internal/config"
	"storefront/internal/dto"
	"storefront/internal/models"
	"storefront/internal/server"
	"storefront/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testCookie = "storefront-jwt"

// setupApp builds the full application over a private in-memory database.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	cfg := &config.Config{
		JWTSecret:       "test_jwt_secret",
		JWTExpiration:   time.Hour,
		JWTCookie:       testCookie,
		ImageDir:        t.TempDir(),
		ProductCacheTTL: time.Minute,
	}
	return server.New(server.Deps{Config: cfg, DB: db}), db
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

// call sends a JSON request, authenticating with token when it is set.
func call(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1) // -1 for no timeout
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// signUp registers a user with role and returns a login token.
func signUp(t *testing.T, app *fiber.App, username, role string) string {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var loginResp map[string]string
	decode(t, resp, &loginResp)
	require.NotEmpty(t, loginResp["token"])
	return loginResp["token"]
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app, _ := setupApp(t)

	userToRegister := map[string]string{
		"username": "testuser",
		"email":    "test@example.com",
		"password": "password123",
	}
	resp := call(t, app, http.MethodPost, "/api/v1/auth/register", "", userToRegister)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var registerResp map[string]interface{}
	decode(t, resp, &registerResp)
	assert.Equal(t, "User registered successfully", registerResp["message"])
	user := registerResp["user"].(map[string]interface{})
	assert.NotContains(t, user, "password")
	assert.Equal(t, models.RoleUser, user["role"])

	// Duplicate registration (username)
	resp = call(t, app, http.MethodPost, "/api/v1/auth/register", "", userToRegister)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var errResp map[string]interface{}
	decode(t, resp, &errResp)
	assert.Equal(t, false, errResp["status"])

	// Validation failure
	resp = call(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{"username": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decode(t, resp, &errResp)
	assert.Equal(t, "Validation failed", errResp["message"])
	assert.Contains(t, errResp["errors"], "Email")

	// Login
	resp = call(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "testuser",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == testCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "login must set the token cookie")
	var loginResp map[string]string
	decode(t, resp, &loginResp)
	assert.Equal(t, loginResp["token"], cookie.Value)

	// The cookie alone authenticates
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/user", nil)
	req.Header.Set("Cookie", fmt.Sprintf("%s=%s", testCookie, cookie.Value))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var me models.User
	decode(t, resp, &me)
	assert.Equal(t, "test@example.com", me.Email)

	// Wrong password
	resp = call(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "testuser",
		"password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/v1/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestProtectedRoutes(t *testing.T) {
	app, _ := setupApp(t)
	userToken := signUp(t, app, "shopper", models.RoleUser)

	resp := call(t, app, http.MethodGet, "/api/v1/carts/users/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/v1/carts/users/cart", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/v1/admin/categories", userToken, map[string]string{"name": "Peripherals"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/v1/public/products/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/v1/public/products/42", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var errResp map[string]interface{}
	decode(t, resp, &errResp)
	assert.Equal(t, "Product not found with productId: 42", errResp["message"])
}

func TestCheckoutFlow(t *testing.T) {
	app, _ := setupApp(t)
	adminToken := signUp(t, app, "admin", models.RoleAdmin)
	aliceToken := signUp(t, app, "alice", models.RoleUser)

	resp := call(t, app, http.MethodPost, "/api/v1/admin/categories", adminToken, map[string]string{"name": "Travel Gear"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var category models.Category
	decode(t, resp, &category)

	resp = call(t, app, http.MethodPost, fmt.Sprintf("/api/v1/admin/categories/%d/product", category.ID), adminToken,
		map[string]any{
			"name":        "Travel Pillow",
			"description": "Inflatable neck pillow",
			"quantity":    10,
			"price":       "19.99",
			"discount":    "0",
		})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var product models.Product
	decode(t, resp, &product)
	assert.Equal(t, "19.99", product.SpecialPrice.StringFixed(2))

	resp = call(t, app, http.MethodGet, "/api/v1/public/products?pageSize=5&sortBy=price&sortOrder=desc", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page dto.Page[models.Product]
	decode(t, resp, &page)
	assert.Equal(t, int64(1), page.TotalElements)
	assert.Equal(t, 5, page.PageSize)

	resp = call(t, app, http.MethodPost, fmt.Sprintf("/api/v1/carts/products/%d/quantity/2", product.ID), aliceToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var cart dto.CartResponse
	decode(t, resp, &cart)
	assert.Equal(t, "39.98", cart.TotalPrice.StringFixed(2))

	resp = call(t, app, http.MethodPost, "/api/v1/addresses", aliceToken, map[string]string{
		"street":        "Baker Street",
		"building_name": "221B House",
		"city":          "London",
		"state":         "Greater London",
		"country":       "United Kingdom",
		"zip_code":      "NW16XE",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var address models.Address
	decode(t, resp, &address)

	resp = call(t, app, http.MethodPost, "/api/v1/order/users/payment/card", aliceToken, map[string]any{
		"addressId":         address.ID,
		"pgName":            "Stripe",
		"pgPaymentId":       "pi_123",
		"pgStatus":          "SUCCESS",
		"pgResponseMessage": "ok",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var summary dto.OrderSummary
	decode(t, resp, &summary)
	assert.Equal(t, "39.98", summary.TotalAmount.StringFixed(2))
	assert.Equal(t, models.OrderStatusAccepted, summary.OrderStatus)
	assert.Equal(t, "card", summary.Payment.PaymentMethod)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 2, summary.Items[0].Quantity)

	resp = call(t, app, http.MethodGet, fmt.Sprintf("/api/v1/public/products/%d", product.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &product)
	assert.Equal(t, 8, product.Quantity)

	resp = call(t, app, http.MethodGet, "/api/v1/carts/users/cart", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &cart)
	assert.Empty(t, cart.Products)
	assert.True(t, cart.TotalPrice.IsZero())

	// Checking out again finds nothing to buy
	resp = call(t, app, http.MethodPost, "/api/v1/order/users/payment/card", aliceToken, map[string]any{"addressId": address.ID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errResp map[string]interface{}
	decode(t, resp, &errResp)
	assert.Equal(t, "cart is empty", errResp["message"])

	resp = call(t, app, http.MethodGet, "/api/v1/orders/users", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []dto.OrderSummary
	decode(t, resp, &orders)
	require.Len(t, orders, 1)

	resp = call(t, app, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", summary.OrderID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestExportAndHealth(t *testing.T) {
	app, db := setupApp(t)
	adminToken := signUp(t, app, "admin", models.RoleAdmin)
	category := testutil.SeedCategory(t, db, "Peripherals")
	testutil.SeedProduct(t, db, category.ID, "Keyboard", "75.00", 25)

	resp := call(t, app, http.MethodGet, "/api/v1/admin/products/export", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Disposition"), "attachment"))
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(data, []byte("PK")), "xlsx is a zip archive")

	resp = call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var health map[string]string
	decode(t, resp, &health)
	assert.Equal(t, "connected", health["database"])
	assert.Equal(t, "disabled", health["cache"])

	resp = call(t, app, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "storefront_http_requests_total")
}
