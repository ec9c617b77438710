package repositories

import "foodcourt/internal/models"

// OrderRepository defines the interface for order data access.
//
// Orders are never deleted; they form the audit trail of every checkout.
// Update is a conditional write on the order's Version, like CartRepository.Save.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetByTrackingID(trackingID string) (*models.Order, error)
	GetByPaymentIntentID(intentID string) (*models.Order, error)
	GetByUserID(userID string) ([]models.Order, error)
	Update(order *models.Order) error
}
