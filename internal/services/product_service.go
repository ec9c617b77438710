package services

import (
	"errors"
	"fmt"

	"foodcourt/internal/models"
	"foodcourt/internal/repositories"
)

// ProductService handles business logic related to the product catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// ListProducts retrieves the catalog, optionally filtered by category. Only
// available products are returned; the admin surface uses the repository
// directly via Create/Update/Delete and sees everything through GetAll.
func (s *ProductService) ListProducts(category string) ([]models.Product, error) {
	var (
		products []models.Product
		err      error
	)
	if category != "" {
		cat := models.Category(category)
		if !cat.Valid() {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
		}
		products, err = s.repo.GetByCategory(cat)
	} else {
		products, err = s.repo.GetAll()
	}
	if err != nil {
		return nil, err
	}

	available := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Available {
			available = append(available, p)
		}
	}
	return available, nil
}

// GetAllProducts retrieves every product regardless of availability.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return nil, err
	}
	return product, nil
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if !product.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, product.Category)
	}
	if product.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product. Orders snapshot prices at
// checkout, so a price edit here never changes an existing order.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if !product.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, product.Category)
	}
	if product.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if err := s.repo.Update(product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: product %s", ErrNotFound, product.ID)
		}
		return err
	}
	return nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return err
	}
	return nil
}
