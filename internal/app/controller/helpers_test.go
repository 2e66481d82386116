package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hmlee/threadline-backend/internal/app/model"
	"github.com/hmlee/threadline-backend/internal/db"
	"github.com/hmlee/threadline-backend/internal/middleware"
	"github.com/hmlee/threadline-backend/pkg/util"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(database) })

	return database
}

// injectUser stands in for the auth middleware in handler tests
func injectUser(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, userID)
		c.Set(middleware.ContextUserRoleKey, role)
		c.Next()
	}
}

func createTestUser(t *testing.T, database *gorm.DB, username string, role model.UserRole) *model.User {
	t.Helper()

	hash, err := util.HashPassword("password123")
	require.NoError(t, err)

	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, database.Create(user).Error)
	return user
}

func createTestProduct(t *testing.T, database *gorm.DB, name string, price float64) *model.Product {
	t.Helper()

	product := &model.Product{
		Name:     name,
		Price:    price,
		Category: "Test",
		Stock:    10,
	}
	require.NoError(t, database.Create(product).Error)
	return product
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
