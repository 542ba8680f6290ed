package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bemenstore/bemen-api/initializers"
	"github.com/bemenstore/bemen-api/middlewares"
	"github.com/bemenstore/bemen-api/models"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestServer wires an in-memory database into the package-global DB and
// registers the routes under test.
func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.Order{},
		&models.Notification{},
	))
	initializers.DB = db

	server := gin.New()
	cart := server.Group("/cart", middlewares.RequireAuth())
	{
		cart.GET("", GetCart)
		cart.POST("", AddToCart)
		cart.DELETE("/:productId", RemoveFromCart)
	}
	checkout := server.Group("/checkout", middlewares.RequireAuth())
	{
		checkout.POST("/cod", CheckoutCOD)
	}
	orders := server.Group("/orders", middlewares.RequireAuth())
	{
		orders.DELETE("/:orderId", CancelOrder)
	}
	return server
}

func seedUserWithToken(t *testing.T) (models.User, string) {
	t.Helper()
	user := models.User{Name: "Test User", Email: "shopper@example.com", Phone: "0700000000", AccountActivated: true}
	require.NoError(t, initializers.DB.Create(&user).Error)
	token, err := generateJWT(user)
	require.NoError(t, err)
	return user, token
}

func seedProduct(t *testing.T, name, price string, stock int) models.Product {
	t.Helper()
	category := models.Category{Name: "Accessories"}
	require.NoError(t, initializers.DB.FirstOrCreate(&category, models.Category{Name: "Accessories"}).Error)
	product := models.Product{
		Name:        name,
		Description: name,
		CategoryID:  category.ID,
		Price:       decimal.RequireFromString(price),
		Stock:       stock,
		Active:      true,
	}
	require.NoError(t, initializers.DB.Create(&product).Error)
	return product
}

func doJSON(server *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	return recorder
}

func TestCartRequiresAuth(t *testing.T) {
	server := setupTestServer(t)

	resp := doJSON(server, http.MethodGet, "/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = doJSON(server, http.MethodGet, "/cart", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAddToCartIncrementsExistingLine(t *testing.T) {
	server := setupTestServer(t)
	user, token := seedUserWithToken(t)
	product := seedProduct(t, "Leather Gloves", "18.00", 10)

	resp := doJSON(server, http.MethodPost, "/cart", token, gin.H{"productId": product.ID, "quantity": 2})
	assert.Equal(t, http.StatusCreated, resp.Code)

	resp = doJSON(server, http.MethodPost, "/cart", token, gin.H{"productId": product.ID, "quantity": 3})
	assert.Equal(t, http.StatusOK, resp.Code)

	var item models.CartItem
	require.NoError(t, initializers.DB.
		Where("user_id = ? AND product_id = ?", user.ID, product.ID).
		First(&item).Error)
	assert.Equal(t, 5, item.Quantity)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	server := setupTestServer(t)
	_, token := seedUserWithToken(t)

	resp := doJSON(server, http.MethodPost, "/cart", token, gin.H{"productId": 999, "quantity": 1})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCheckoutCODEndpoint(t *testing.T) {
	server := setupTestServer(t)
	user, token := seedUserWithToken(t)
	product := seedProduct(t, "Card Holder", "12.00", 4)

	resp := doJSON(server, http.MethodPost, "/checkout/cod", token, gin.H{
		"orders": []gin.H{{"productId": product.ID, "quantity": 2, "shippingAddress": "14 Hill Road"}},
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var orderCount int64
	initializers.DB.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&orderCount)
	assert.EqualValues(t, 1, orderCount)

	var reloaded models.Product
	require.NoError(t, initializers.DB.First(&reloaded, product.ID).Error)
	assert.Equal(t, 2, reloaded.Stock)
}

func TestCheckoutCODEndpointInsufficientStock(t *testing.T) {
	server := setupTestServer(t)
	_, token := seedUserWithToken(t)
	product := seedProduct(t, "Card Holder", "12.00", 1)

	resp := doJSON(server, http.MethodPost, "/checkout/cod", token, gin.H{
		"orders": []gin.H{{"productId": product.ID, "quantity": 3}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCancelOrderEndpoint(t *testing.T) {
	server := setupTestServer(t)
	user, token := seedUserWithToken(t)
	product := seedProduct(t, "Card Holder", "12.00", 4)

	resp := doJSON(server, http.MethodPost, "/checkout/cod", token, gin.H{
		"orders": []gin.H{{"productId": product.ID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	var order models.Order
	require.NoError(t, initializers.DB.Where("user_id = ?", user.ID).First(&order).Error)

	// Missing reason is rejected.
	resp = doJSON(server, http.MethodDelete, fmt.Sprintf("/orders/%d", order.ID), token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doJSON(server, http.MethodDelete, fmt.Sprintf("/orders/%d", order.ID), token,
		gin.H{"cancellationReason": "changed mind"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	// A repeat cancel is a state conflict.
	resp = doJSON(server, http.MethodDelete, fmt.Sprintf("/orders/%d", order.ID), token,
		gin.H{"cancellationReason": "again"})
	assert.Equal(t, http.StatusConflict, resp.Code)

	var reloaded models.Product
	require.NoError(t, initializers.DB.First(&reloaded, product.ID).Error)
	assert.Equal(t, 4, reloaded.Stock)
}
