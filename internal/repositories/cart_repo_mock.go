package repositories

import (
	"sync"
	"time"

	"foodcourt/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	carts map[string]models.Cart // keyed by user ID, one cart per user
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		carts: make(map[string]models.Cart),
	}
}

// GetByUserID returns a user's cart.
func (r *MockCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, ErrNotFound
	}
	// Copy the items slice so callers cannot mutate stored state in place.
	out := cart
	out.Items = append([]models.CartItem(nil), cart.Items...)
	return &out, nil
}

// Create adds a new cart.
func (r *MockCartRepository) Create(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	cart.CreatedAt = time.Now()
	cart.UpdatedAt = time.Now()
	r.carts[cart.UserID] = *cart
	return nil
}

// Save replaces the cart's items, conditional on the version read by the
// caller, mirroring the GORM implementation's optimistic check.
func (r *MockCartRepository) Save(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.carts[cart.UserID]
	if !ok {
		return ErrNotFound
	}
	if stored.Version != cart.Version {
		return ErrVersionConflict
	}
	cart.Version++
	cart.UpdatedAt = time.Now()
	saved := *cart
	saved.Items = append([]models.CartItem(nil), cart.Items...)
	r.carts[cart.UserID] = saved
	return nil
}
