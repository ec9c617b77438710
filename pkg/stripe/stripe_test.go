package stripe_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodcourt/pkg/stripe"

	"github.com/stretchr/testify/assert"
)

func TestClient_CreateIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payment_intents", r.URL.Path)

		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "sk_test_123", user)

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "2550", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "ABC123XYZ0", r.PostForm.Get("metadata[tracking_id]"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_123","amount":2550,"currency":"usd","status":"requires_payment_method","client_secret":"pi_123_secret"}`))
	}))
	defer server.Close()

	client := stripe.NewWithBaseURL("sk_test_123", server.URL)
	intent, err := client.CreateIntent(context.Background(), stripe.CreateIntentParams{
		Amount:   2550,
		Currency: "usd",
		Metadata: map[string]string{"tracking_id": "ABC123XYZ0"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret", intent.ClientSecret)
	assert.False(t, intent.Succeeded())
}

func TestClient_RetrieveIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/payment_intents/pi_123", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_123","amount":2550,"currency":"usd","status":"succeeded"}`))
	}))
	defer server.Close()

	client := stripe.NewWithBaseURL("sk_test_123", server.URL)
	intent, err := client.RetrieveIntent(context.Background(), "pi_123")

	assert.NoError(t, err)
	assert.True(t, intent.Succeeded())
}

func TestClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"code":"card_declined","message":"Your card was declined."}}`))
	}))
	defer server.Close()

	client := stripe.NewWithBaseURL("sk_test_123", server.URL)
	_, err := client.RetrieveIntent(context.Background(), "pi_bad")

	var apiErr *stripe.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusPaymentRequired, apiErr.StatusCode)
	assert.Equal(t, "card_declined", apiErr.Code)
	assert.Contains(t, apiErr.Error(), "declined")
}
