package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Webhook event types this application cares about. Any other type is
// acknowledged and ignored.
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
)

// Event is an inbound webhook event from the provider.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// PaymentIntent decodes the event payload as a payment intent.
func (e *Event) PaymentIntent() (*PaymentIntent, error) {
	var intent PaymentIntent
	if err := json.Unmarshal(e.Data.Object, &intent); err != nil {
		return nil, fmt.Errorf("failed to decode event payment intent: %w", err)
	}
	return &intent, nil
}

// ParseEvent decodes a raw webhook payload, without verifying it. Call
// VerifySignature first.
func ParseEvent(payload []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to decode webhook event: %w", err)
	}
	return &event, nil
}

// VerifySignature checks a webhook payload against its Stripe-Signature
// header using the endpoint's shared secret. The header carries a unix
// timestamp and one or more HMAC-SHA256 signatures of "<timestamp>.<payload>"
// in the form "t=<ts>,v1=<hex>[,v1=<hex>...]".
//
// Fails closed: a missing, malformed, or mismatched signature is rejected.
func VerifySignature(payload []byte, header, secret string) bool {
	var timestamp string
	var candidates []string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "v1":
			candidates = append(candidates, kv[1])
		}
	}
	if timestamp == "" || len(candidates) == 0 {
		return false
	}
	if _, err := strconv.ParseInt(timestamp, 10, 64); err != nil {
		return false
	}

	expected := computeSignature(timestamp, payload, secret)
	for _, candidate := range candidates {
		decoded, err := hex.DecodeString(candidate)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			return true
		}
	}
	return false
}

// SignPayload produces a Stripe-Signature header value for the payload.
// Used by tests and local tooling to build verifiable events.
func SignPayload(payload []byte, secret string, at time.Time) string {
	ts := strconv.FormatInt(at.Unix(), 10)
	sig := computeSignature(ts, payload, secret)
	return fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(sig))
}

func computeSignature(timestamp string, payload []byte, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	return mac.Sum(nil)
}
