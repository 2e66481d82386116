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
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidCartAction = errors.New("unknown cart action")
	ErrNotCartOwner      = errors.New("cart item belongs to another user")
)

type CartService interface {
	AddToCart(userID, productID uint, quantity int) (*model.CartItem, error)
	GetUserCart(userID uint) ([]model.CartItem, float64, error)
	UpdateCartItem(userID, cartItemID uint, action model.CartAction) (*model.CartItem, error)
	ClearCart(userID uint) error
}

type cartService struct {
	db          *gorm.DB
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(db *gorm.DB, cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		db:          db,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddToCart inserts a cart line or bumps the quantity of an existing one.
// The lookup and the write happen in one transaction with the existing row
// locked, so concurrent adds for the same (user, product) pair sum their
// quantities instead of producing duplicate rows.
func (s *cartService) AddToCart(userID, productID uint, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	logger.Debug("Adding product to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	var itemID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.CartItem
		err := db.ForUpdate(tx).
			Where("user_id = ? AND product_id = ?", userID, productID).
			First(&existing).Error

		switch {
		case err == nil:
			existing.Quantity += quantity
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			itemID = existing.ID
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			item := model.CartItem{
				UserID:    userID,
				ProductID: productID,
				Quantity:  quantity,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			itemID = item.ID
			return nil
		default:
			return err
		}
	})
	if err != nil {
		logger.Error("Failed to add product to cart", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	item, err := s.cartRepo.FindByID(itemID)
	if err != nil {
		return nil, err
	}

	logger.Info("Product added to cart", map[string]interface{}{
		"user_id":      userID,
		"product_id":   productID,
		"cart_item_id": item.ID,
		"quantity":     item.Quantity,
	})
	return item, nil
}

// GetUserCart returns the user's cart lines with products preloaded,
// plus the running total at current catalog prices.
func (s *cartService) GetUserCart(userID uint) ([]model.CartItem, float64, error) {
	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, 0, err
	}

	var total float64
	for _, item := range items {
		total += item.Product.Price * float64(item.Quantity)
	}

	return items, total, nil
}

// UpdateCartItem applies an increment, decrement or remove action to one
// cart line. Decrement at quantity 1 is a no-op, never a removal. A nil
// item in the result means the line was removed.
func (s *cartService) UpdateCartItem(userID, cartItemID uint, action model.CartAction) (*model.CartItem, error) {
	item, err := s.cartRepo.FindByID(cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}

	if item.UserID != userID {
		logger.Warn("Cart item update rejected, not the owner", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": cartItemID,
			"owner_id":     item.UserID,
		})
		return nil, ErrNotCartOwner
	}

	switch action {
	case model.CartActionIncrement:
		item.Quantity++
		if err := s.cartRepo.Update(item); err != nil {
			return nil, err
		}
	case model.CartActionDecrement:
		if item.Quantity > 1 {
			item.Quantity--
			if err := s.cartRepo.Update(item); err != nil {
				return nil, err
			}
		}
	case model.CartActionRemove:
		if err := s.cartRepo.Delete(item.ID); err != nil {
			return nil, err
		}
		logger.Info("Cart item removed", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": cartItemID,
		})
		return nil, nil
	default:
		return nil, ErrInvalidCartAction
	}

	logger.Debug("Cart item updated", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": item.ID,
		"action":       action,
		"quantity":     item.Quantity,
	})
	return item, nil
}

func (s *cartService) ClearCart(userID uint) error {
	if err := s.cartRepo.DeleteByUserID(userID); err != nil {
		return err
	}

	logger.Info("Cart cleared", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}
