package service

import (
	"errors"

	"github.com/hmlee/threadline-backend/internal/app/model"
	"github.com/hmlee/threadline-backend/internal/app/repository"
	"github.com/hmlee/threadline-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidPrice    = errors.New("price cannot be negative")
	ErrInvalidStock    = errors.New("stock cannot be negative")
)

// featuredLimit caps the storefront landing page selection
const featuredLimit = 4

type ProductService interface {
	ListProducts(category string) ([]model.Product, error)
	GetFeaturedProducts() ([]model.Product, error)
	ListCategories() ([]string, error)
	GetProductByID(id uint) (*model.Product, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(id uint, updated *model.Product) (*model.Product, error)
	DeleteProduct(id uint) error
	CountProducts() (int64, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) ListProducts(category string) ([]model.Product, error) {
	if category != "" {
		return s.productRepo.FindByCategory(category)
	}
	return s.productRepo.FindAll()
}

func (s *productService) GetFeaturedProducts() ([]model.Product, error) {
	return s.productRepo.FindFeatured(featuredLimit)
}

func (s *productService) ListCategories() ([]string, error) {
	return s.productRepo.ListCategories()
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) CreateProduct(product *model.Product) error {
	if product.Price < 0 {
		return ErrInvalidPrice
	}
	if product.Stock < 0 {
		return ErrInvalidStock
	}

	if err := s.productRepo.Create(product); err != nil {
		return err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (s *productService) UpdateProduct(id uint, updated *model.Product) (*model.Product, error) {
	if updated.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if updated.Stock < 0 {
		return nil, ErrInvalidStock
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	product.Name = updated.Name
	product.Description = updated.Description
	product.Price = updated.Price
	product.Category = updated.Category
	product.Stock = updated.Stock
	product.ImageURL = updated.ImageURL

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	logger.Info("Product updated", map[string]interface{}{
		"product_id": product.ID,
	})
	return product, nil
}

func (s *productService) DeleteProduct(id uint) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (s *productService) CountProducts() (int64, error) {
	return s.productRepo.CountAll()
}
