package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hmlee/threadline-backend/config"
	"github.com/hmlee/threadline-backend/internal/app/controller"
	"github.com/hmlee/threadline-backend/internal/app/repository"
	"github.com/hmlee/threadline-backend/internal/app/service"
	"github.com/hmlee/threadline-backend/internal/middleware"
	"github.com/hmlee/threadline-backend/pkg/redis"
	"gorm.io/gorm"
)

// Setup wires repositories, services and controllers and returns the
// configured engine
func Setup(cfg *config.Config, db *gorm.DB, tokenStore *redis.TokenStore) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(&cfg.CORS))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, tokenStore, &cfg.JWT)
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(db, cartRepo, productRepo)
	orderService := service.NewOrderService(db, orderRepo, cartRepo)

	// Controllers
	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(productService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	adminController := controller.NewAdminController(productService, orderService, authService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authenticated := middleware.Authenticate(&cfg.JWT, tokenStore)

	v1 := r.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", productController.List)
			products.GET("/featured", productController.Featured)
			products.GET("/categories", productController.Categories)
			products.GET("/:id", productController.GetByID)
		}

		auth := v1.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.POST("/logout", authenticated, authController.Logout)
			auth.GET("/me", authenticated, authController.Me)
		}

		cart := v1.Group("/cart", authenticated)
		{
			cart.GET("", cartController.GetCart)
			cart.POST("", cartController.AddToCart)
			cart.PUT("/:id", cartController.UpdateItem)
			cart.DELETE("/:id", cartController.RemoveItem)
			cart.DELETE("", cartController.ClearCart)
		}

		checkout := v1.Group("/checkout", authenticated)
		{
			checkout.GET("", orderController.CheckoutSummary)
			checkout.POST("", orderController.Checkout)
		}

		orders := v1.Group("/orders", authenticated)
		{
			orders.GET("", orderController.List)
			orders.GET("/:id", orderController.GetByID)
		}

		// The whole admin surface sits behind one role gate, so new
		// admin routes cannot forget it.
		admin := v1.Group("/admin", authenticated, middleware.RequireRole("admin"))
		{
			admin.GET("/dashboard", adminController.Dashboard)
			admin.GET("/orders", adminController.ListOrders)
			admin.GET("/users", adminController.ListUsers)
			admin.POST("/products", adminController.CreateProduct)
			admin.PUT("/products/:id", adminController.UpdateProduct)
			admin.DELETE("/products/:id", adminController.DeleteProduct)
		}
	}

	return r
}
