package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hmlee/threadline-backend/internal/app/service"
	apperrors "github.com/hmlee/threadline-backend/internal/errors"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// List handles GET /api/v1/products with an optional ?category= filter
func (ctrl *ProductController) List(c *gin.Context) {
	category := c.Query("category")

	products, err := ctrl.productService.ListProducts(category)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// Featured handles GET /api/v1/products/featured
func (ctrl *ProductController) Featured(c *gin.Context) {
	products, err := ctrl.productService.GetFeaturedProducts()
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// Categories handles GET /api/v1/products/categories
func (ctrl *ProductController) Categories(c *gin.Context) {
	categories, err := ctrl.productService.ListCategories()
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetByID handles GET /api/v1/products/:id
func (ctrl *ProductController) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	product, err := ctrl.productService.GetProductByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Product not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
