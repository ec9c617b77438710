package models

import "time"

// PaymentMethod is how the customer chose to pay at checkout.
type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCOD  PaymentMethod = "cod"
	PaymentMethodChat PaymentMethod = "chat"
)

// Valid reports whether the payment method is one of the supported methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodCOD, PaymentMethodChat:
		return true
	}
	return false
}

// PaymentStatus tracks the payment side of an order.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentPaid      PaymentStatus = "Paid"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
	PaymentRefunded  PaymentStatus = "Refunded"
)

// Valid reports whether the payment status is a member of the enumeration.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Settled reports whether the payment has already been confirmed, in either
// of the two success states.
func (s PaymentStatus) Settled() bool {
	return s == PaymentPaid || s == PaymentCompleted
}

// OrderStatus tracks the fulfillment side of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

// Valid reports whether the order status is a member of the enumeration.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// DeliveryAddress is where a cash-on-delivery order should be delivered.
type DeliveryAddress struct {
	Street string `json:"street" validate:"required"`
	City   string `json:"city" validate:"required"`
	State  string `json:"state" validate:"required"`
	Phone  string `json:"phone" validate:"required"`
}

// Complete reports whether every field of the address is populated.
func (a *DeliveryAddress) Complete() bool {
	return a != nil && a.Street != "" && a.City != "" && a.State != "" && a.Phone != ""
}

// OrderItem is a single line of an order with the unit price captured at
// checkout time, decoupled from later catalog price changes.
type OrderItem struct {
	ID          uint    `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID     string  `json:"-" gorm:"type:varchar(36);index"`
	ProductID   string  `json:"product_id" gorm:"type:varchar(36)"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"` // Unit price at the time of checkout
}

// Order is the immutable record of a completed checkout. Only the status
// fields and the update timestamp change after creation; orders are never
// deleted.
type Order struct {
	ID     string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID string      `json:"user_id" gorm:"type:varchar(36);index"`
	Items  []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	// Total is computed once at creation from the snapshot prices and never
	// recomputed.
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"type:varchar(10)"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(12)"`
	OrderStatus   OrderStatus   `json:"order_status" gorm:"type:varchar(12)"`
	// PaymentIntentID is the payment provider's reference for the hold
	// created at checkout. Present only for card orders.
	PaymentIntentID string `json:"payment_intent_id,omitempty" gorm:"index;type:varchar(64)"`
	// TrackingID is the short, user-shareable identifier for this order.
	// Unique, generated at creation, immutable.
	TrackingID string           `json:"tracking_id" gorm:"uniqueIndex;type:varchar(16)"`
	Address    *DeliveryAddress `json:"delivery_address,omitempty" gorm:"embedded;embeddedPrefix:addr_"`
	Version    int              `json:"-"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}
