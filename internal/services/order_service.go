package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"foodcourt/internal/models"
	"foodcourt/internal/repositories"
	"foodcourt/pkg/stripe"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutRequest is the caller's input to Checkout.
type CheckoutRequest struct {
	PaymentMethod   models.PaymentMethod    `json:"payment_method" validate:"required"`
	DeliveryAddress *models.DeliveryAddress `json:"delivery_address,omitempty"`
}

// CheckoutResult is what Checkout returns on success. The provider fields
// are set only for card payments; the WhatsApp link only for chat orders.
type CheckoutResult struct {
	OrderID         string  `json:"order_id"`
	TrackingID      string  `json:"tracking_id"`
	Total           float64 `json:"total"`
	PaymentIntentID string  `json:"payment_intent_id,omitempty"`
	ClientSecret    string  `json:"client_secret,omitempty"`
	WhatsAppLink    string  `json:"whatsapp_link,omitempty"`
}

// OrderService converts carts into orders and manages order status
// transitions. All collaborators are injected so tests can substitute fakes.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	userRepo    repositories.UserRepository
	provider    PaymentProvider
	notifier    NotificationSink
	publisher   EventPublisher

	currency        string
	whatsAppNumber  string
	providerTimeout time.Duration
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	cartRepo repositories.CartRepository,
	productRepo repositories.ProductRepository,
	userRepo repositories.UserRepository,
	provider PaymentProvider,
	notifier NotificationSink,
	publisher EventPublisher,
	whatsAppNumber string,
) *OrderService {
	return &OrderService{
		orderRepo:       orderRepo,
		cartRepo:        cartRepo,
		productRepo:     productRepo,
		userRepo:        userRepo,
		provider:        provider,
		notifier:        notifier,
		publisher:       publisher,
		currency:        "usd",
		whatsAppNumber:  whatsAppNumber,
		providerTimeout: 10 * time.Second,
	}
}

// Checkout converts the user's cart into an order.
//
// Validation happens before any mutation. For card payments the provider
// hold is created before the order; a provider failure or timeout means no
// order exists and the whole checkout is safe to retry. The cart is cleared
// only after the order is durably persisted, and a persistence failure
// leaves the cart intact. Notification and event publication are best
// effort and never fail the checkout.
func (s *OrderService) Checkout(ctx context.Context, userID string, req CheckoutRequest) (*CheckoutResult, error) {
	if !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}
	if req.PaymentMethod == models.PaymentMethodCOD && !req.DeliveryAddress.Complete() {
		return nil, fmt.Errorf("%w: cash on delivery requires street, city, state and phone", ErrInvalidInput)
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, fmt.Errorf("failed to load cart for user %s: %w", userID, err)
	}
	if cart.Empty() {
		return nil, ErrEmptyCart
	}

	// Snapshot the live catalog price of every line. Later catalog edits
	// never touch this order.
	items := make([]models.OrderItem, 0, len(cart.Items))
	total := decimal.Zero
	for _, line := range cart.Items {
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: product %s is no longer available", ErrInvalidInput, line.ProductID)
			}
			return nil, fmt.Errorf("failed to resolve product %s: %w", line.ProductID, err)
		}
		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			Price:       product.Price,
		})
		total = total.Add(decimal.NewFromFloat(product.Price).Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	trackingID, err := GenerateTrackingID()
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:            uuid.New().String(),
		UserID:        userID,
		Items:         items,
		Total:         total.InexactFloat64(),
		PaymentMethod: req.PaymentMethod,
		TrackingID:    trackingID,
	}

	var clientSecret string
	switch req.PaymentMethod {
	case models.PaymentMethodCard:
		// The hold must exist before the order does, so a failed or timed
		// out provider call leaves nothing behind.
		callCtx, cancel := context.WithTimeout(ctx, s.providerTimeout)
		defer cancel()
		intent, err := s.provider.CreateIntent(callCtx, stripe.CreateIntentParams{
			Amount:   minorUnits(total),
			Currency: s.currency,
			Metadata: map[string]string{
				"tracking_id": trackingID,
				"user_id":     userID,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
		}
		order.PaymentStatus = models.PaymentPending
		order.OrderStatus = models.OrderPending
		order.PaymentIntentID = intent.ID
		clientSecret = intent.ClientSecret

	case models.PaymentMethodCOD:
		order.PaymentStatus = models.PaymentCompleted
		order.OrderStatus = models.OrderProcessing
		order.Address = req.DeliveryAddress

	case models.PaymentMethodChat:
		// Chat orders settle informally over the messaging link and mirror
		// COD's immediate-processing semantics.
		order.PaymentStatus = models.PaymentCompleted
		order.OrderStatus = models.OrderProcessing
	}

	if err := s.orderRepo.Create(order); err != nil {
		// No partial checkout: the cart has not been touched.
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	// The order is durable from here on; everything below is best effort.
	cart.Items = nil
	if err := s.cartRepo.Save(cart); err != nil {
		log.Printf("Warning: failed to clear cart for user %s after order %s: %v", userID, order.ID, err)
	}

	s.notifyOrderCreated(order)
	s.publishEvent("order.created", order)

	result := &CheckoutResult{
		OrderID:         order.ID,
		TrackingID:      trackingID,
		Total:           order.Total,
		PaymentIntentID: order.PaymentIntentID,
		ClientSecret:    clientSecret,
	}
	if req.PaymentMethod == models.PaymentMethodChat {
		result.WhatsAppLink = s.whatsAppLink(order)
	}
	return result, nil
}

// UpdateStatus applies new order and/or payment statuses to an order. The
// reference may be the internal order ID or the tracking ID. At least one
// status must be given; each must be a member of its enumeration. Any listed
// status may follow any other.
func (s *OrderService) UpdateStatus(orderRef string, orderStatus models.OrderStatus, paymentStatus models.PaymentStatus) (*models.Order, error) {
	if orderStatus == "" && paymentStatus == "" {
		return nil, fmt.Errorf("%w: at least one of order status or payment status is required", ErrInvalidInput)
	}
	if orderStatus != "" && !orderStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, orderStatus)
	}
	if paymentStatus != "" && !paymentStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, paymentStatus)
	}

	order, err := s.findOrder(orderRef)
	if err != nil {
		return nil, err
	}

	if orderStatus != "" {
		order.OrderStatus = orderStatus
	}
	if paymentStatus != "" {
		order.PaymentStatus = paymentStatus
	}
	if err := s.orderRepo.Update(order); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repositories.ErrVersionConflict):
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to update order %s: %w", order.ID, err)
	}

	// The update is durable; notification failures are logged, not
	// propagated.
	s.notifyStatusUpdated(order)
	s.publishEvent("order.status_updated", order)
	return order, nil
}

// GetOrderForUser returns an order by ID if the user owns it. Admins may
// read any order.
func (s *OrderService) GetOrderForUser(id, userID string, isAdmin bool) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, ErrForbidden
	}
	return order, nil
}

// GetOrderByTrackingID returns an order by its tracking ID.
func (s *OrderService) GetOrderByTrackingID(trackingID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByTrackingID(strings.ToUpper(trackingID))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// GetOrderByPaymentIntentID returns an order by its provider reference.
// A foreign user's order is reported as not found rather than forbidden, so
// the lookup leaks nothing about other users' payment references.
func (s *OrderService) GetOrderByPaymentIntentID(intentID, userID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByPaymentIntentID(intentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrNotFound
	}
	return order, nil
}

// GetOrdersForUser returns all of a user's orders.
func (s *OrderService) GetOrdersForUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

// findOrder resolves an order reference that may be an internal ID or a
// tracking ID.
func (s *OrderService) findOrder(ref string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ref)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	order, err = s.orderRepo.GetByTrackingID(strings.ToUpper(ref))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// minorUnits converts a major-unit amount to the provider's minor currency
// unit, rounded to the nearest integer.
func minorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// statusMessages maps fulfillment statuses to the sentence sent to the
// customer. Statuses without an entry get a generic fallback.
var statusMessages = map[models.OrderStatus]string{
	models.OrderPending:    "We have received your order and it is awaiting processing.",
	models.OrderProcessing: "Your order is being prepared.",
	models.OrderShipped:    "Your order is on its way.",
	models.OrderDelivered:  "Your order has been delivered. Enjoy your meal!",
	models.OrderCancelled:  "Your order has been cancelled.",
}

func (s *OrderService) notifyOrderCreated(order *models.Order) {
	if s.notifier == nil {
		return
	}
	user, err := s.userRepo.GetByID(order.UserID)
	if err != nil {
		log.Printf("Warning: cannot look up user %s to confirm order %s: %v", order.UserID, order.ID, err)
		return
	}
	subject := fmt.Sprintf("Order confirmation %s", order.TrackingID)
	if err := s.notifier.Send(user.Email, subject, confirmationBody(order)); err != nil {
		log.Printf("Warning: failed to send confirmation for order %s: %v", order.ID, err)
	}
}

func (s *OrderService) notifyStatusUpdated(order *models.Order) {
	if s.notifier == nil {
		return
	}
	user, err := s.userRepo.GetByID(order.UserID)
	if err != nil {
		log.Printf("Warning: cannot look up user %s to notify about order %s: %v", order.UserID, order.ID, err)
		return
	}
	msg, ok := statusMessages[order.OrderStatus]
	if !ok {
		msg = fmt.Sprintf("Your order status was updated to %s.", order.OrderStatus)
	}
	body := fmt.Sprintf("%s\n\nTracking ID: %s\nPayment status: %s\n", msg, order.TrackingID, order.PaymentStatus)
	subject := fmt.Sprintf("Order %s update", order.TrackingID)
	if err := s.notifier.Send(user.Email, subject, body); err != nil {
		log.Printf("Warning: failed to send status update for order %s: %v", order.ID, err)
	}
}

// confirmationBody renders the order-confirmation email: every line with its
// unit price and subtotal, the total, the tracking ID, and the delivery
// address for cash-on-delivery orders.
func confirmationBody(order *models.Order) string {
	var b strings.Builder
	b.WriteString("Thank you for your order!\n\n")
	for _, item := range order.Items {
		subtotal := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		fmt.Fprintf(&b, "%s x%d @ $%.2f = $%s\n", item.ProductName, item.Quantity, item.Price, subtotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: $%.2f\n", order.Total)
	fmt.Fprintf(&b, "Tracking ID: %s\n", order.TrackingID)
	fmt.Fprintf(&b, "Payment method: %s\n", order.PaymentMethod)
	if order.PaymentMethod == models.PaymentMethodCOD && order.Address != nil {
		fmt.Fprintf(&b, "\nDelivery address:\n%s\n%s, %s\nPhone: %s\n",
			order.Address.Street, order.Address.City, order.Address.State, order.Address.Phone)
	}
	return b.String()
}

func (s *OrderService) whatsAppLink(order *models.Order) string {
	var msg strings.Builder
	msg.WriteString("Hello, I would like to place an order:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&msg, "%s x%d @ $%.2f\n", item.ProductName, item.Quantity, item.Price)
	}
	fmt.Fprintf(&msg, "Total: $%.2f\n", order.Total)
	fmt.Fprintf(&msg, "Tracking ID: %s", order.TrackingID)
	return "https://wa.me/" + s.whatsAppNumber + "?text=" + url.QueryEscape(msg.String())
}

func (s *OrderService) publishEvent(eventType string, order *models.Order) {
	if s.publisher == nil {
		return
	}
	payload := map[string]interface{}{
		"order_id":       order.ID,
		"user_id":        order.UserID,
		"tracking_id":    order.TrackingID,
		"payment_method": order.PaymentMethod,
		"payment_status": order.PaymentStatus,
		"order_status":   order.OrderStatus,
		"total":          order.Total,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Warning: failed to marshal %s event for order %s: %v", eventType, order.ID, err)
		return
	}
	if err := s.publisher.Publish(eventType, body); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", eventType, order.ID, err)
	}
}
