package services

import (
	"errors"
	"fmt"

	"foodcourt/internal/models"
	"foodcourt/internal/repositories"
)

// CartService manages each user's single active cart.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the user's cart, creating an empty one on first access.
func (s *CartService) GetCart(userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	if err := s.cartRepo.Create(cart); err != nil {
		return nil, fmt.Errorf("failed to create cart for user %s: %w", userID, err)
	}
	return cart, nil
}

// AddItem puts a product in the cart. If the product is already present its
// quantity is incremented; a cart never holds two lines for one product.
func (s *CartService) AddItem(userID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	if _, err := s.productRepo.GetByID(productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, productID)
		}
		return nil, err
	}

	cart, err := s.GetCart(userID)
	if err != nil {
		return nil, err
	}

	if i := cart.Find(productID); i >= 0 {
		cart.Items[i].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, models.CartItem{ProductID: productID, Quantity: quantity})
	}
	return s.save(cart)
}

// UpdateItem sets the quantity of a product already in the cart. A quantity
// of zero or less removes the line.
func (s *CartService) UpdateItem(userID, productID string, quantity int) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: cart", ErrNotFound)
		}
		return nil, err
	}

	i := cart.Find(productID)
	if i < 0 {
		return nil, fmt.Errorf("%w: product %s is not in the cart", ErrNotFound, productID)
	}
	if quantity <= 0 {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	} else {
		cart.Items[i].Quantity = quantity
	}
	return s.save(cart)
}

// RemoveItem takes a product out of the cart.
func (s *CartService) RemoveItem(userID, productID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: cart", ErrNotFound)
		}
		return nil, err
	}

	i := cart.Find(productID)
	if i < 0 {
		return nil, fmt.Errorf("%w: product %s is not in the cart", ErrNotFound, productID)
	}
	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	return s.save(cart)
}

func (s *CartService) save(cart *models.Cart) (*models.Cart, error) {
	if err := s.cartRepo.Save(cart); err != nil {
		if errors.Is(err, repositories.ErrVersionConflict) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to save cart %s: %w", cart.ID, err)
	}
	return cart, nil
}
