package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hmlee/threadline-backend/internal/app/model"
	"github.com/hmlee/threadline-backend/internal/app/service"
	apperrors "github.com/hmlee/threadline-backend/internal/errors"
)

// AdminController serves the management surface. Every route it handles
// sits behind the admin role gate.
type AdminController struct {
	productService service.ProductService
	orderService   service.OrderService
	authService    service.AuthService
}

func NewAdminController(productService service.ProductService, orderService service.OrderService, authService service.AuthService) *AdminController {
	return &AdminController{
		productService: productService,
		orderService:   orderService,
		authService:    authService,
	}
}

// ProductRequest carries product fields for admin create and update.
// Price is a pointer so that a free item (price 0) still passes the
// required binding.
type ProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Stock       int      `json:"stock"`
	ImageURL    string   `json:"image_url"`
}

// Dashboard handles GET /api/v1/admin/dashboard
func (ctrl *AdminController) Dashboard(c *gin.Context) {
	totalProducts, err := ctrl.productService.CountProducts()
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	totalUsers, err := ctrl.authService.CountUsers()
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	totalOrders, err := ctrl.orderService.CountOrders()
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	recentOrders, err := ctrl.orderService.GetAllOrders()
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_products": totalProducts,
		"total_users":    totalUsers,
		"total_orders":   totalOrders,
		"recent_orders":  recentOrders,
	})
}

// ListOrders handles GET /api/v1/admin/orders
func (ctrl *AdminController) ListOrders(c *gin.Context) {
	orders, err := ctrl.orderService.GetAllOrders()
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// ListUsers handles GET /api/v1/admin/users
func (ctrl *AdminController) ListUsers(c *gin.Context) {
	users, err := ctrl.authService.ListUsers()
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// CreateProduct handles POST /api/v1/admin/products
func (ctrl *AdminController) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Name, price and category are required")
		return
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	}

	if err := ctrl.productService.CreateProduct(product); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPrice):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Price cannot be negative")
		case errors.Is(err, service.ErrInvalidStock):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Stock cannot be negative")
		default:
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create product")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// UpdateProduct handles PUT /api/v1/admin/products/:id
func (ctrl *AdminController) UpdateProduct(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Name, price and category are required")
		return
	}

	product, err := ctrl.productService.UpdateProduct(id, &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Product not found")
		case errors.Is(err, service.ErrInvalidPrice):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Price cannot be negative")
		case errors.Is(err, service.ErrInvalidStock):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Stock cannot be negative")
		default:
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update product")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DeleteProduct handles DELETE /api/v1/admin/products/:id
func (ctrl *AdminController) DeleteProduct(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Product not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
