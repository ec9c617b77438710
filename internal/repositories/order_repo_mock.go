package repositories

import (
	"sync"
	"time"

	"foodcourt/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}

// GetByID returns an order by its internal ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &order, nil
}

// GetByTrackingID returns an order by its tracking ID.
func (r *MockOrderRepository) GetByTrackingID(trackingID string) (*models.Order, error) {
	return r.findOne(func(o models.Order) bool { return o.TrackingID == trackingID })
}

// GetByPaymentIntentID returns an order by its payment provider reference.
func (r *MockOrderRepository) GetByPaymentIntentID(intentID string) (*models.Order, error) {
	if intentID == "" {
		return nil, ErrNotFound
	}
	return r.findOne(func(o models.Order) bool { return o.PaymentIntentID == intentID })
}

func (r *MockOrderRepository) findOne(match func(models.Order) bool) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if match(o) {
			order := o
			return &order, nil
		}
	}
	return nil, ErrNotFound
}

// GetByUserID returns all orders belonging to a user.
func (r *MockOrderRepository) GetByUserID(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0)
	for _, o := range r.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

// Update modifies an order's mutable fields, conditional on the version
// read by the caller.
func (r *MockOrderRepository) Update(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[order.ID]
	if !ok {
		return ErrNotFound
	}
	if stored.Version != order.Version {
		return ErrVersionConflict
	}
	stored.PaymentStatus = order.PaymentStatus
	stored.OrderStatus = order.OrderStatus
	stored.PaymentIntentID = order.PaymentIntentID
	stored.Version++
	stored.UpdatedAt = time.Now()
	r.orders[order.ID] = stored

	order.Version = stored.Version
	order.UpdatedAt = stored.UpdatedAt
	return nil
}
