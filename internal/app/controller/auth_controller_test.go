package controller

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hmlee/threadline-backend/config"
	"github.com/hmlee/threadline-backend/internal/app/model"
	"github.com/hmlee/threadline-backend/internal/app/repository"
	"github.com/hmlee/threadline-backend/internal/app/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthRouter(database *gorm.DB) *gin.Engine {
	authService := service.NewAuthService(
		repository.NewUserRepository(database),
		nil,
		&config.JWTConfig{
			Secret:             "test-secret",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 24 * time.Hour,
		},
	)
	ctrl := NewAuthController(authService)

	r := gin.New()
	r.POST("/api/v1/auth/register", ctrl.Register)
	r.POST("/api/v1/auth/login", ctrl.Login)
	return r
}

func TestAuthAPI_RegisterAndLogin(t *testing.T) {
	database := setupTestDB(t)
	r := setupAuthRouter(database)

	w := performRequest(r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username":         "alice",
		"email":            "alice@example.com",
		"password":         "password123",
		"confirm_password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	user := decodeBody(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "user", user["role"])
	// The hash never leaves the server
	assert.NotContains(t, user, "password_hash")

	w = performRequest(r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["access_token"])
	assert.NotEmpty(t, body["refresh_token"])
}

func TestAuthAPI_RegisterValidation(t *testing.T) {
	database := setupTestDB(t)
	r := setupAuthRouter(database)

	w := performRequest(r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username":         "alice",
		"email":            "not-an-email",
		"password":         "password123",
		"confirm_password": "password123",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "VALIDATION_INVALID_INPUT", body["error"])
}

func TestAuthAPI_RegisterPasswordMismatch(t *testing.T) {
	database := setupTestDB(t)
	r := setupAuthRouter(database)

	w := performRequest(r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username":         "alice",
		"email":            "alice@example.com",
		"password":         "password123",
		"confirm_password": "password124",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "VALIDATION_PASSWORD_MISMATCH", body["error"])

	// No account was created
	w = performRequest(r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthAPI_RegisterDuplicateUsername(t *testing.T) {
	database := setupTestDB(t)
	r := setupAuthRouter(database)

	w := performRequest(r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username":         "alice",
		"email":            "alice@example.com",
		"password":         "password123",
		"confirm_password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username":         "alice",
		"email":            "other@example.com",
		"password":         "password123",
		"confirm_password": "password123",
	})

	require.Equal(t, http.StatusConflict, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "AUTH_USERNAME_EXISTS", body["error"])
}

func TestAuthAPI_LoginWrongPassword(t *testing.T) {
	database := setupTestDB(t)
	r := setupAuthRouter(database)

	w := performRequest(r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username":         "alice",
		"email":            "alice@example.com",
		"password":         "password123",
		"confirm_password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "AUTH_INVALID_CREDENTIALS", body["error"])
}

func TestAuthAPI_Me(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "alice", model.RoleUser)

	authService := service.NewAuthService(
		repository.NewUserRepository(database),
		nil,
		&config.JWTConfig{Secret: "test-secret", AccessTokenExpiry: time.Minute, RefreshTokenExpiry: time.Hour},
	)
	ctrl := NewAuthController(authService)

	r := gin.New()
	r.GET("/api/v1/auth/me", injectUser(user.ID, "user"), ctrl.Me)

	w := performRequest(r, http.MethodGet, "/api/v1/auth/me", nil)

	require.Equal(t, http.StatusOK, w.Code)
	me := decodeBody(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "alice", me["username"])
}
