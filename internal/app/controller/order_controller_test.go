package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hmlee/threadline-backend/internal/app/model"
	"github.com/hmlee/threadline-backend/internal/app/repository"
	"github.com/hmlee/threadline-backend/internal/app/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderRouter(database *gorm.DB, userID uint) *gin.Engine {
	cartRepo := repository.NewCartRepository(database)
	productRepo := repository.NewProductRepository(database)
	orderRepo := repository.NewOrderRepository(database)

	cartService := service.NewCartService(database, cartRepo, productRepo)
	orderService := service.NewOrderService(database, orderRepo, cartRepo)

	cartCtrl := NewCartController(cartService)
	orderCtrl := NewOrderController(orderService)

	r := gin.New()
	authed := injectUser(userID, "user")
	r.POST("/api/v1/cart", authed, cartCtrl.AddToCart)
	r.GET("/api/v1/checkout", authed, orderCtrl.CheckoutSummary)
	r.POST("/api/v1/checkout", authed, orderCtrl.Checkout)
	r.GET("/api/v1/orders", authed, orderCtrl.List)
	r.GET("/api/v1/orders/:id", authed, orderCtrl.GetByID)
	return r
}

func TestCheckoutAPI_Success(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "alice", model.RoleUser)
	shirt := createTestProduct(t, database, "T-Shirt", 19.99)
	jeans := createTestProduct(t, database, "Jeans", 49.99)
	r := setupOrderRouter(database, user.ID)

	w := performRequest(r, http.MethodPost, "/api/v1/cart", gin.H{"product_id": shirt.ID, "quantity": 2})
	require.Equal(t, http.StatusCreated, w.Code)
	w = performRequest(r, http.MethodPost, "/api/v1/cart", gin.H{"product_id": jeans.ID, "quantity": 1})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(r, http.MethodPost, "/api/v1/checkout", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	order := decodeBody(t, w)["order"].(map[string]interface{})
	assert.InDelta(t, 89.97, order["total_price"].(float64), 0.001)
	assert.Len(t, order["order_items"].([]interface{}), 2)
}

func TestCheckoutAPI_EmptyCart(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "alice", model.RoleUser)
	r := setupOrderRouter(database, user.ID)

	w := performRequest(r, http.MethodPost, "/api/v1/checkout", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "CART_EMPTY", body["error"])
}

func TestCheckoutAPI_Summary(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "alice", model.RoleUser)
	shirt := createTestProduct(t, database, "T-Shirt", 19.99)
	r := setupOrderRouter(database, user.ID)

	w := performRequest(r, http.MethodPost, "/api/v1/cart", gin.H{"product_id": shirt.ID, "quantity": 2})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(r, http.MethodGet, "/api/v1/checkout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.InDelta(t, 39.98, body["total_price"].(float64), 0.001)
	assert.Len(t, body["items"].([]interface{}), 1)
}

func TestCheckoutAPI_SummaryEmptyCart(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "alice", model.RoleUser)
	r := setupOrderRouter(database, user.ID)

	w := performRequest(r, http.MethodGet, "/api/v1/checkout", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "CART_EMPTY", body["error"])
}

func TestOrdersAPI_ListAndGet(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "alice", model.RoleUser)
	shirt := createTestProduct(t, database, "T-Shirt", 19.99)
	r := setupOrderRouter(database, user.ID)

	w := performRequest(r, http.MethodPost, "/api/v1/cart", gin.H{"product_id": shirt.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	w = performRequest(r, http.MethodPost, "/api/v1/checkout", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := uint(decodeBody(t, w)["order"].(map[string]interface{})["id"].(float64))

	w = performRequest(r, http.MethodGet, "/api/v1/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["orders"].([]interface{}), 1)

	w = performRequest(r, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", orderID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	order := decodeBody(t, w)["order"].(map[string]interface{})
	assert.EqualValues(t, orderID, order["id"])
}

func TestOrdersAPI_GetSomeoneElsesOrder(t *testing.T) {
	database := setupTestDB(t)
	alice := createTestUser(t, database, "alice", model.RoleUser)
	bob := createTestUser(t, database, "bob", model.RoleUser)
	shirt := createTestProduct(t, database, "T-Shirt", 19.99)

	aliceRouter := setupOrderRouter(database, alice.ID)
	bobRouter := setupOrderRouter(database, bob.ID)

	w := performRequest(aliceRouter, http.MethodPost, "/api/v1/cart", gin.H{"product_id": shirt.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	w = performRequest(aliceRouter, http.MethodPost, "/api/v1/checkout", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := uint(decodeBody(t, w)["order"].(map[string]interface{})["id"].(float64))

	w = performRequest(bobRouter, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", orderID), nil)

	require.Equal(t, http.StatusForbidden, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "AUTHZ_OWNER_ONLY", body["error"])
}

func TestOrdersAPI_GetUnknownOrder(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "alice", model.RoleUser)
	r := setupOrderRouter(database, user.ID)

	w := performRequest(r, http.MethodGet, "/api/v1/orders/9999", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "RESOURCE_NOT_FOUND", body["error"])
}
