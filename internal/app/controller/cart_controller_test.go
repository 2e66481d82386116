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

func setupCartRouter(database *gorm.DB, userID uint) *gin.Engine {
	cartService := service.NewCartService(
		database,
		repository.NewCartRepository(database),
		repository.NewProductRepository(database),
	)
	ctrl := NewCartController(cartService)

	r := gin.New()
	cart := r.Group("/api/v1/cart", injectUser(userID, "user"))
	{
		cart.GET("", ctrl.GetCart)
		cart.POST("", ctrl.AddToCart)
		cart.PUT("/:id", ctrl.UpdateItem)
		cart.DELETE("/:id", ctrl.RemoveItem)
		cart.DELETE("", ctrl.ClearCart)
	}
	return r
}

func TestCartAPI_AddAndGet(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "alice", model.RoleUser)
	product := createTestProduct(t, database, "T-Shirt", 19.99)
	r := setupCartRouter(database, user.ID)

	w := performRequest(r, http.MethodPost, "/api/v1/cart", gin.H{
		"product_id": product.ID,
		"quantity":   2,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(r, http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	items := body["items"].([]interface{})
	assert.Len(t, items, 1)
	assert.InDelta(t, 39.98, body["total_price"].(float64), 0.001)
}

func TestCartAPI_AddDefaultsQuantityToOne(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "alice", model.RoleUser)
	product := createTestProduct(t, database, "T-Shirt", 19.99)
	r := setupCartRouter(database, user.ID)

	w := performRequest(r, http.MethodPost, "/api/v1/cart", gin.H{
		"product_id": product.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	item := body["item"].(map[string]interface{})
	assert.EqualValues(t, 1, item["quantity"])
}

func TestCartAPI_AddRejectsZeroQuantity(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "alice", model.RoleUser)
	product := createTestProduct(t, database, "T-Shirt", 19.99)
	r := setupCartRouter(database, user.ID)

	w := performRequest(r, http.MethodPost, "/api/v1/cart", gin.H{
		"product_id": product.ID,
		"quantity":   0,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "VALIDATION_INVALID_QUANTITY", body["error"])
}

func TestCartAPI_AddUnknownProduct(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "alice", model.RoleUser)
	r := setupCartRouter(database, user.ID)

	w := performRequest(r, http.MethodPost, "/api/v1/cart", gin.H{
		"product_id": 9999,
	})

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "RESOURCE_NOT_FOUND", body["error"])
}

func TestCartAPI_UpdateActions(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "alice", model.RoleUser)
	product := createTestProduct(t, database, "T-Shirt", 19.99)
	r := setupCartRouter(database, user.ID)

	w := performRequest(r, http.MethodPost, "/api/v1/cart", gin.H{
		"product_id": product.ID,
		"quantity":   1,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	itemID := uint(decodeBody(t, w)["item"].(map[string]interface{})["id"].(float64))

	w = performRequest(r, http.MethodPut, fmt.Sprintf("/api/v1/cart/%d", itemID), gin.H{"action": "increment"})
	require.Equal(t, http.StatusOK, w.Code)
	item := decodeBody(t, w)["item"].(map[string]interface{})
	assert.EqualValues(t, 2, item["quantity"])

	w = performRequest(r, http.MethodPut, fmt.Sprintf("/api/v1/cart/%d", itemID), gin.H{"action": "decrement"})
	require.Equal(t, http.StatusOK, w.Code)
	item = decodeBody(t, w)["item"].(map[string]interface{})
	assert.EqualValues(t, 1, item["quantity"])

	w = performRequest(r, http.MethodPut, fmt.Sprintf("/api/v1/cart/%d", itemID), gin.H{"action": "remove"})
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, http.MethodGet, "/api/v1/cart", nil)
	body := decodeBody(t, w)
	assert.Empty(t, body["items"])
}

func TestCartAPI_UpdateUnknownAction(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "alice", model.RoleUser)
	product := createTestProduct(t, database, "T-Shirt", 19.99)
	r := setupCartRouter(database, user.ID)

	w := performRequest(r, http.MethodPost, "/api/v1/cart", gin.H{"product_id": product.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	itemID := uint(decodeBody(t, w)["item"].(map[string]interface{})["id"].(float64))

	w = performRequest(r, http.MethodPut, fmt.Sprintf("/api/v1/cart/%d", itemID), gin.H{"action": "double"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "VALIDATION_INVALID_ACTION", body["error"])
}

func TestCartAPI_UpdateSomeoneElsesItem(t *testing.T) {
	database := setupTestDB(t)
	alice := createTestUser(t, database, "alice", model.RoleUser)
	bob := createTestUser(t, database, "bob", model.RoleUser)
	product := createTestProduct(t, database, "T-Shirt", 19.99)

	aliceRouter := setupCartRouter(database, alice.ID)
	bobRouter := setupCartRouter(database, bob.ID)

	w := performRequest(aliceRouter, http.MethodPost, "/api/v1/cart", gin.H{"product_id": product.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	itemID := uint(decodeBody(t, w)["item"].(map[string]interface{})["id"].(float64))

	w = performRequest(bobRouter, http.MethodPut, fmt.Sprintf("/api/v1/cart/%d", itemID), gin.H{"action": "increment"})

	require.Equal(t, http.StatusForbidden, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "AUTHZ_OWNER_ONLY", body["error"])
}

func TestCartAPI_InvalidIDParam(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "alice", model.RoleUser)
	r := setupCartRouter(database, user.ID)

	w := performRequest(r, http.MethodPut, "/api/v1/cart/abc", gin.H{"action": "increment"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "VALIDATION_INVALID_ID", body["error"])
}

func TestCartAPI_RemoveItem(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "alice", model.RoleUser)
	product := createTestProduct(t, database, "T-Shirt", 19.99)
	r := setupCartRouter(database, user.ID)

	w := performRequest(r, http.MethodPost, "/api/v1/cart", gin.H{"product_id": product.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	itemID := uint(decodeBody(t, w)["item"].(map[string]interface{})["id"].(float64))

	w = performRequest(r, http.MethodDelete, fmt.Sprintf("/api/v1/cart/%d", itemID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, http.MethodGet, "/api/v1/cart", nil)
	body := decodeBody(t, w)
	assert.Empty(t, body["items"])
}

func TestCartAPI_Clear(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "alice", model.RoleUser)
	product := createTestProduct(t, database, "T-Shirt", 19.99)
	r := setupCartRouter(database, user.ID)

	w := performRequest(r, http.MethodPost, "/api/v1/cart", gin.H{"product_id": product.ID})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(r, http.MethodDelete, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, http.MethodGet, "/api/v1/cart", nil)
	body := decodeBody(t, w)
	assert.Empty(t, body["items"])
}
