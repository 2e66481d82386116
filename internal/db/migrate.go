package db

import (
	"github.com/hmlee/threadline-backend/config"
	"github.com/hmlee/threadline-backend/internal/app/model"
	"github.com/hmlee/threadline-backend/pkg/logger"
	"github.com/hmlee/threadline-backend/pkg/util"
)

// Migrate runs database migrations. It is called once during process
// startup, before the server accepts requests.
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed creates the admin account and the sample catalog on first run.
// Both steps are existence-checked, so repeated startups are no-ops.
func Seed(cfg *config.SeedConfig) error {
	logger.Info("Seeding initial data...")

	if err := seedAdminUser(cfg); err != nil {
		logger.Error("Failed to seed admin user", err)
		return err
	}

	if err := seedSampleProducts(); err != nil {
		logger.Error("Failed to seed sample products", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

func seedAdminUser(cfg *config.SeedConfig) error {
	var count int64
	if err := DB.Model(&model.User{}).
		Where("username = ?", cfg.AdminUsername).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Admin user already exists, skipping...", map[string]interface{}{
			"username": cfg.AdminUsername,
		})
		return nil
	}

	passwordHash, err := util.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := model.User{
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
	}

	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	logger.Info("Admin user created", map[string]interface{}{
		"username": admin.Username,
		"email":    admin.Email,
	})
	return nil
}

func seedSampleProducts() error {
	var count int64
	if err := DB.Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Products already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	products := []model.Product{
		{Name: "Classic T-Shirt", Description: "A comfortable cotton t-shirt.", Price: 19.99, Category: "T-Shirts", Stock: 100, ImageURL: "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?ixlib=rb-4.0.3&auto=format&fit=crop&w=500&q=60"},
		{Name: "Denim Jeans", Description: "Durable blue jeans.", Price: 49.99, Category: "Pants", Stock: 50, ImageURL: "https://images.unsplash.com/photo-1542272604-780c8d10333d?ixlib=rb-4.0.3&auto=format&fit=crop&w=500&q=60"},
		{Name: "Leather Jacket", Description: "Stylish leather jacket.", Price: 129.99, Category: "Jackets", Stock: 20, ImageURL: "https://images.unsplash.com/photo-1551028719-00167b16eac5?ixlib=rb-4.0.3&auto=format&fit=crop&w=500&q=60"},
		{Name: "Summer Dress", Description: "Light and breezy dress.", Price: 39.99, Category: "Dresses", Stock: 30, ImageURL: "https://images.unsplash.com/photo-1515347619152-16782eb06a6c?ixlib=rb-4.0.3&auto=format&fit=crop&w=500&q=60"},
		{Name: "Running Shoes", Description: "Comfortable sneakers.", Price: 79.99, Category: "Shoes", Stock: 40, ImageURL: "https://images.unsplash.com/photo-1542291026-7eec264c27ff?ixlib=rb-4.0.3&auto=format&fit=crop&w=500&q=60"},
		{Name: "Winter Scarf", Description: "Warm wool scarf.", Price: 24.99, Category: "Accessories", Stock: 60, ImageURL: "https://images.unsplash.com/photo-1606760227091-3dd870d97f1d?ixlib=rb-4.0.3&auto=format&fit=crop&w=500&q=60"},
	}

	for _, product := range products {
		if err := DB.Create(&product).Error; err != nil {
			logger.Error("Failed to create sample product", err, map[string]interface{}{
				"name": product.Name,
			})
			return err
		}
	}

	logger.Info("Sample products seeded successfully", map[string]interface{}{
		"total_products": len(products),
	})
	return nil
}
