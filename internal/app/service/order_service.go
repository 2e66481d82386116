package service

import (
	"errors"

	"github.com/hmlee/threadline-backend/internal/app/model"
	"github.com/hmlee/threadline-backend/internal/app/repository"
	"github.com/hmlee/threadline-backend/internal/db"
	"github.com/hmlee/threadline-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
	ErrNotOrderOwner = errors.New("order belongs to another user")
)

// CheckoutSummary previews what a checkout would produce: the current
// cart lines and their total at current catalog prices.
type CheckoutSummary struct {
	Items      []model.CartItem `json:"items"`
	TotalPrice float64          `json:"total_price"`
}

type OrderService interface {
	GetCheckoutSummary(userID uint) (*CheckoutSummary, error)
	CreateOrderFromCart(userID uint) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetOrderByID(userID, orderID uint) (*model.Order, error)
	GetAllOrders() ([]model.Order, error)
	CountOrders() (int64, error)
}

type orderService struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository

	// afterSnapshot runs inside the checkout transaction, between the
	// cart read and the order write. Tests use it to interleave writes.
	afterSnapshot func(tx *gorm.DB)
}

func NewOrderService(db *gorm.DB, orderRepo repository.OrderRepository, cartRepo repository.CartRepository) OrderService {
	return &orderService{
		db:        db,
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
	}
}

func (s *orderService) GetCheckoutSummary(userID uint) (*CheckoutSummary, error) {
	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, item := range items {
		total += item.Product.Price * float64(item.Quantity)
	}

	return &CheckoutSummary{
		Items:      items,
		TotalPrice: total,
	}, nil
}

// CreateOrderFromCart converts the user's cart into an order. Reading the
// cart, snapshotting prices, writing the order and clearing the cart all
// happen in one transaction with the cart rows locked, so two concurrent
// checkouts of the same cart produce one order and one empty-cart error,
// and a failure at any step leaves both cart and orders untouched.
func (s *orderService) CreateOrderFromCart(userID uint) (*model.Order, error) {
	logger.Debug("Starting checkout", map[string]interface{}{
		"user_id": userID,
	})

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var cartItems []model.CartItem
	err := db.ForUpdate(tx).
		Where("user_id = ?", userID).
		Preload("Product").
		Find(&cartItems).Error
	if err != nil {
		tx.Rollback()
		logger.Error("Failed to load cart for checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if len(cartItems) == 0 {
		tx.Rollback()
		logger.Warn("Checkout rejected, cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	// Snapshot unit prices now. Later catalog edits must not change
	// what this order records.
	var totalPrice float64
	orderItems := make([]model.OrderItem, 0, len(cartItems))
	consumedIDs := make([]uint, 0, len(cartItems))
	for _, item := range cartItems {
		if item.Product.ID == 0 {
			tx.Rollback()
			logger.Error("Cart references a missing product", nil, map[string]interface{}{
				"user_id":    userID,
				"product_id": item.ProductID,
			})
			return nil, ErrProductNotFound
		}
		orderItems = append(orderItems, model.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
		})
		consumedIDs = append(consumedIDs, item.ID)
		totalPrice += item.Product.Price * float64(item.Quantity)
	}

	if s.afterSnapshot != nil {
		s.afterSnapshot(tx)
	}

	order := model.Order{
		UserID:     userID,
		TotalPrice: totalPrice,
		OrderItems: orderItems,
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	// Delete exactly the consumed rows. A line added to the cart after
	// the locked read belongs to the next checkout, not this one.
	if err := tx.Delete(&model.CartItem{}, consumedIDs).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to clear consumed cart items after order creation", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": order.ID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit checkout transaction", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	created, err := s.orderRepo.FindByID(order.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Order created from cart", map[string]interface{}{
		"user_id":     userID,
		"order_id":    created.ID,
		"total_price": created.TotalPrice,
		"items_count": len(created.OrderItems),
	})
	return created, nil
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	return s.orderRepo.FindByUserID(userID)
}

func (s *orderService) GetOrderByID(userID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.UserID != userID {
		logger.Warn("Order access rejected, not the owner", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
			"owner_id": order.UserID,
		})
		return nil, ErrNotOrderOwner
	}

	return order, nil
}

func (s *orderService) GetAllOrders() ([]model.Order, error) {
	return s.orderRepo.FindAll()
}

func (s *orderService) CountOrders() (int64, error) {
	return s.orderRepo.CountAll()
}
