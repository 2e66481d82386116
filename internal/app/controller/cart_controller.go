package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hmlee/threadline-backend/internal/app/model"
	"github.com/hmlee/threadline-backend/internal/app/service"
	apperrors "github.com/hmlee/threadline-backend/internal/errors"
	"github.com/hmlee/threadline-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{cartService: cartService}
}

type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	// Quantity is optional and defaults to 1. An explicit value below 1
	// is rejected rather than coerced.
	Quantity *int `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Action model.CartAction `json:"action" binding:"required"`
}

// GetCart handles GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	items, total, err := ctrl.cartService.GetUserCart(userID)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       items,
		"total_price": total,
	})
}

// AddToCart handles POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Product ID is required")
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item, err := ctrl.cartService.AddToCart(userID, req.ProductID, quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			apperrors.BadRequest(c, apperrors.ValidationInvalidQuantity, "Quantity must be at least 1")
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Product not found")
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// UpdateItem handles PUT /api/v1/cart/:id with an increment, decrement
// or remove action
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	cartItemID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID")
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Action is required")
		return
	}

	item, err := ctrl.cartService.UpdateCartItem(userID, cartItemID, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartItemNotFound):
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Cart item not found")
		case errors.Is(err, service.ErrNotCartOwner):
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "Cart item belongs to another user")
		case errors.Is(err, service.ErrInvalidCartAction):
			apperrors.BadRequest(c, apperrors.ValidationInvalidAction, "Action must be increment, decrement or remove")
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	if item == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// RemoveItem handles DELETE /api/v1/cart/:id
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	cartItemID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID")
		return
	}

	_, err = ctrl.cartService.UpdateCartItem(userID, cartItemID, model.CartActionRemove)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartItemNotFound):
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Cart item not found")
		case errors.Is(err, service.ErrNotCartOwner):
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "Cart item belongs to another user")
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}

// ClearCart handles DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.cartService.ClearCart(userID); err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
