package repositories

import "foodcourt/internal/models"

// CartRepository defines the interface for cart data access.
//
// Save is a conditional write: it only succeeds if the cart's Version still
// matches the stored one, and increments it. A lost race returns
// ErrVersionConflict.
type CartRepository interface {
	GetByUserID(userID string) (*models.Cart, error)
	Create(cart *models.Cart) error
	Save(cart *models.Cart) error
}
