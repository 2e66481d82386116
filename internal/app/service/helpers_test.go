package service

import (
	"testing"

	"github.com/hmlee/threadline-backend/internal/app/model"
	"github.com/hmlee/threadline-backend/internal/db"
	"github.com/hmlee/threadline-backend/pkg/util"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(database) })

	return database
}

func createTestUser(t *testing.T, database *gorm.DB, username string) *model.User {
	t.Helper()

	hash, err := util.HashPassword("password123")
	require.NoError(t, err)

	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         model.RoleUser,
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
