package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"foodcourt/internal/models"
	"foodcourt/internal/repositories"
	"foodcourt/pkg/stripe"
)

// VerifyResult is the outcome of a pull-path payment verification: the
// provider's current view of the intent plus the matching order, if any.
type VerifyResult struct {
	PaymentStatus string        `json:"payment_status"`
	Order         *models.Order `json:"order,omitempty"`
}

// PaymentService reconciles provider-side payment state back into order
// records, from two convergent triggers: client polling (VerifyPayment) and
// provider webhooks (HandleWebhook). Both paths are idempotent and safe to
// invoke redundantly for the same order.
type PaymentService struct {
	orderRepo     repositories.OrderRepository
	provider      PaymentProvider
	webhookSecret string
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(orderRepo repositories.OrderRepository, provider PaymentProvider, webhookSecret string) *PaymentService {
	return &PaymentService{
		orderRepo:     orderRepo,
		provider:      provider,
		webhookSecret: webhookSecret,
	}
}

// VerifyPayment queries the provider for the current state of an intent and,
// if the provider reports success, marks the matching order Paid. Repeated
// calls for an already-settled order are no-ops that still succeed.
func (s *PaymentService) VerifyPayment(ctx context.Context, intentID string) (*VerifyResult, error) {
	if intentID == "" {
		return nil, fmt.Errorf("%w: payment intent ID is required", ErrInvalidInput)
	}

	intent, err := s.provider.RetrieveIntent(ctx, intentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	order, err := s.orderRepo.GetByPaymentIntentID(intentID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up order for intent %s: %w", intentID, err)
	}

	if order != nil && intent.Succeeded() && !order.PaymentStatus.Settled() {
		order.PaymentStatus = models.PaymentPaid
		if err := s.applyPaymentStatus(order); err != nil {
			return nil, err
		}
	}

	return &VerifyResult{
		PaymentStatus: intent.Status,
		Order:         order,
	}, nil
}

// HandleWebhook processes a signed provider event. An invalid signature is
// rejected without processing. Payment success marks the order Completed,
// payment failure marks it Failed, and unknown event types are acknowledged
// but otherwise ignored.
func (s *PaymentService) HandleWebhook(payload []byte, sigHeader string) error {
	if !stripe.VerifySignature(payload, sigHeader, s.webhookSecret) {
		return ErrBadSignature
	}

	event, err := stripe.ParseEvent(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	switch event.Type {
	case stripe.EventPaymentSucceeded:
		return s.settleFromEvent(event, models.PaymentCompleted)
	case stripe.EventPaymentFailed:
		return s.settleFromEvent(event, models.PaymentFailed)
	default:
		// Acknowledge everything else so the provider stops retrying.
		return nil
	}
}

func (s *PaymentService) settleFromEvent(event *stripe.Event, status models.PaymentStatus) error {
	intent, err := event.PaymentIntent()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	order, err := s.orderRepo.GetByPaymentIntentID(intent.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// No matching order; nothing to reconcile. Ack so the provider
			// does not retry forever.
			log.Printf("Warning: webhook %s references unknown intent %s", event.Type, intent.ID)
			return nil
		}
		return fmt.Errorf("failed to look up order for intent %s: %w", intent.ID, err)
	}

	if order.PaymentStatus == status {
		return nil
	}
	// Don't regress an already-settled payment on a redelivered success
	// event arriving after a poll already marked it Paid.
	if status == models.PaymentCompleted && order.PaymentStatus.Settled() {
		return nil
	}

	order.PaymentStatus = status
	return s.applyPaymentStatus(order)
}

// applyPaymentStatus persists a payment-status change, retrying once on a
// version conflict. Both reconciliation paths derive truth from the same
// provider, so last writer wins is correct here.
func (s *PaymentService) applyPaymentStatus(order *models.Order) error {
	err := s.orderRepo.Update(order)
	if errors.Is(err, repositories.ErrVersionConflict) {
		fresh, ferr := s.orderRepo.GetByID(order.ID)
		if ferr != nil {
			return fmt.Errorf("failed to re-read order %s after conflict: %w", order.ID, ferr)
		}
		fresh.PaymentStatus = order.PaymentStatus
		*order = *fresh
		err = s.orderRepo.Update(order)
	}
	if err != nil {
		return fmt.Errorf("failed to persist payment status for order %s: %w", order.ID, err)
	}
	return nil
}
