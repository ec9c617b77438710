package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these to HTTP
// statuses with errors.Is; everything else is a generic server error.
var (
	// ErrInvalidInput covers malformed or out-of-range request data. It is
	// always detected before any mutation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyCart means checkout was attempted on a missing or empty cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNotFound means the requested order, product, cart, or user does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller is authenticated but does not own the
	// resource.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials is returned on login failure without revealing
	// whether the account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrBadSignature means a webhook payload failed signature verification
	// and was not processed.
	ErrBadSignature = errors.New("invalid webhook signature")

	// ErrProviderUnavailable means the payment provider could not create a
	// hold at checkout time. No order is created; the whole checkout is
	// safe to retry.
	ErrProviderUnavailable = errors.New("payment provider unavailable")

	// ErrConflict means a conditional write lost the race against a
	// concurrent request for the same user.
	ErrConflict = errors.New("concurrent update conflict")
)
