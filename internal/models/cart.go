package models

import "time"

// CartItem is a single line in a cart: a product reference and a quantity.
type CartItem struct {
	ID        uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	CartID    string `json:"-" gorm:"type:varchar(36);index"`
	ProductID string `json:"product_id" gorm:"type:varchar(36)" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

// Cart holds a user's in-progress product selections. Each user has at most
// one cart; it is created lazily on first access and emptied, never deleted,
// on successful checkout.
//
// Invariant: at most one item per product. Adding a product that is already
// present increments the existing item's quantity.
type Cart struct {
	ID     string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID string     `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"`
	Items  []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	// Version is the optimistic-concurrency token. Saves are conditional on
	// the version read, so two concurrent mutations of the same cart cannot
	// silently overwrite each other.
	Version   int       `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Find returns the index of the item for the given product, or -1.
func (c *Cart) Find(productID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// Empty reports whether the cart has no items.
func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}
