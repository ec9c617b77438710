package services

import (
	"context"

	"foodcourt/pkg/stripe"
)

// PaymentProvider is the payment gateway as seen by the order and payment
// services: create a hold before an order is finalized, and read back the
// provider-side state of an earlier hold. *stripe.Client satisfies it;
// tests substitute fakes.
type PaymentProvider interface {
	CreateIntent(ctx context.Context, params stripe.CreateIntentParams) (*stripe.PaymentIntent, error)
	RetrieveIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error)
}

// NotificationSink delivers a templated message to a customer address.
// *mailer.Mailer satisfies it. Failures are best-effort: callers log and
// continue, they never fail the primary operation.
type NotificationSink interface {
	Send(to, subject, body string) error
}

// EventPublisher emits order lifecycle events for downstream consumers.
// *rabbitmq.Client satisfies it.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}
