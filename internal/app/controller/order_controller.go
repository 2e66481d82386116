package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hmlee/threadline-backend/internal/app/service"
	apperrors "github.com/hmlee/threadline-backend/internal/errors"
	"github.com/hmlee/threadline-backend/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// CheckoutSummary handles GET /api/v1/checkout
func (ctrl *OrderController) CheckoutSummary(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	summary, err := ctrl.orderService.GetCheckoutSummary(userID)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	if len(summary.Items) == 0 {
		apperrors.BadRequest(c, apperrors.CartEmpty, "Cannot check out an empty cart")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Checkout handles POST /api/v1/checkout
func (ctrl *OrderController) Checkout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	order, err := ctrl.orderService.CreateOrderFromCart(userID)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			apperrors.BadRequest(c, apperrors.CartEmpty, "Cannot check out an empty cart")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "checkout")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// List handles GET /api/v1/orders
func (ctrl *OrderController) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetByID handles GET /api/v1/orders/:id
func (ctrl *OrderController) GetByID(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	order, err := ctrl.orderService.GetOrderByID(userID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Order not found")
		case errors.Is(err, service.ErrNotOrderOwner):
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "Order belongs to another user")
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}
