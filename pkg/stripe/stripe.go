package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the live Stripe API endpoint.
const DefaultBaseURL = "https://api.stripe.com/v1"

// Intent statuses reported by the provider.
const (
	StatusSucceeded             = "succeeded"
	StatusRequiresPaymentMethod = "requires_payment_method"
	StatusRequiresConfirmation  = "requires_confirmation"
	StatusProcessing            = "processing"
	StatusCanceled              = "canceled"
)

// PaymentIntent is the provider-side record of a payment attempt.
type PaymentIntent struct {
	ID           string `json:"id"`
	Amount       int64  `json:"amount"` // minor currency units
	Currency     string `json:"currency"`
	Status       string `json:"status"`
	ClientSecret string `json:"client_secret"`
}

// Succeeded reports whether the provider confirmed the payment.
func (i *PaymentIntent) Succeeded() bool {
	return i.Status == StatusSucceeded
}

// CreateIntentParams are the inputs for creating a payment hold.
type CreateIntentParams struct {
	Amount   int64 // minor currency units
	Currency string
	Metadata map[string]string
}

// APIError is an error response from the Stripe API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("stripe: %s (HTTP %d, code %s)", e.Message, e.StatusCode, e.Code)
}

// Client talks to the Stripe PaymentIntents API over plain HTTP with
// form-encoded requests. Construct once and inject wherever a payment
// provider is needed.
type Client struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

// New creates a Stripe client authenticated with the given secret key.
func New(secretKey string) *Client {
	return &Client{
		secretKey: secretKey,
		baseURL:   DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// NewWithBaseURL creates a client against a non-default endpoint. Used by
// tests to point the client at a local fake.
func NewWithBaseURL(secretKey, baseURL string) *Client {
	c := New(secretKey)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// CreateIntent creates a payment hold for the given amount. The returned
// intent carries the provider reference and the client secret the frontend
// needs to complete the payment.
func (c *Client) CreateIntent(ctx context.Context, params CreateIntentParams) (*PaymentIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(params.Amount, 10))
	form.Set("currency", params.Currency)
	for k, v := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}
	return c.do(ctx, http.MethodPost, "/payment_intents", form)
}

// RetrieveIntent fetches the current provider-side state of an intent.
func (c *Client) RetrieveIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	return c.do(ctx, http.MethodGet, "/payment_intents/"+url.PathEscape(id), nil)
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values) (*PaymentIntent, error) {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build stripe request: %w", err)
	}
	req.SetBasicAuth(c.secretKey, "")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       errResp.Error.Code,
			Message:    errResp.Error.Message,
		}
	}

	var intent PaymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, fmt.Errorf("failed to decode stripe response: %w", err)
	}
	return &intent, nil
}
