package repositories

import (
	"errors"
	"fmt"
	"time"

	"foodcourt/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create persists a new order with its item snapshot.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID retrieves an order with its items by internal ID.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	return r.getOne("id = ?", id)
}

// GetByTrackingID retrieves an order by its user-shareable tracking ID.
func (r *GORMOrderRepository) GetByTrackingID(trackingID string) (*models.Order, error) {
	return r.getOne("tracking_id = ?", trackingID)
}

// GetByPaymentIntentID retrieves an order by the payment provider's reference.
func (r *GORMOrderRepository) GetByPaymentIntentID(intentID string) (*models.Order, error) {
	return r.getOne("payment_intent_id = ?", intentID)
}

func (r *GORMOrderRepository) getOne(query string, arg string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order (%s %s): %w", query, arg, err)
	}
	return &order, nil
}

// GetByUserID retrieves all orders belonging to a user, newest first.
func (r *GORMOrderRepository) GetByUserID(userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Order("created_at DESC").
		Find(&orders, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// Update persists the order's mutable fields (statuses, payment reference),
// conditional on the version read by the caller. The item snapshot and total
// are immutable after creation and are deliberately not written here.
func (r *GORMOrderRepository) Update(order *models.Order) error {
	res := r.db.Model(&models.Order{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Updates(map[string]interface{}{
			"payment_status":    order.PaymentStatus,
			"order_status":      order.OrderStatus,
			"payment_intent_id": order.PaymentIntentID,
			"version":           order.Version + 1,
			"updated_at":        time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update order %s: %w", order.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		// Either the order does not exist or a concurrent writer won.
		var count int64
		r.db.Model(&models.Order{}).Where("id = ?", order.ID).Count(&count)
		if count == 0 {
			return ErrNotFound
		}
		return ErrVersionConflict
	}
	order.Version++
	return nil
}
