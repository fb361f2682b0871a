package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
	shopapp "github.com/hostlink-ma/hostlink-services/api/internal/shop/application"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCheckout(t *testing.T) {
	var got checkoutPayload
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/checkout/sessions", r.URL.Path)
		auth = r.Header.Get("Authorization")
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&got)) {
			return
		}
		_, _ = w.Write([]byte(`{"id":"cs_42","url":"https://pay.example.com/cs_42"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL + "/", APIKey: "sk_test", SuccessURL: "https://hostlink.ma/merci"})
	session, err := client.CreateCheckout(context.Background(), shopapp.CheckoutRequest{
		ProductID: "p1", ProductName: "Guide", Amount: 199.99, Currency: "MAD", Email: "buyer@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "cs_42", session.ID)
	assert.Equal(t, "https://pay.example.com/cs_42", session.RedirectURL)
	assert.Equal(t, "Bearer sk_test", auth)
	assert.Equal(t, int64(19999), got.Amount)
	assert.Equal(t, "mad", got.Currency)
	assert.Equal(t, "p1", got.Metadata["productId"])
}

func TestCreateCheckoutSurfacesGatewayErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := NewClient(Config{BaseURL: server.URL}).CreateCheckout(context.Background(), shopapp.CheckoutRequest{Amount: 1})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=401")
}

func TestParseWebhookVerifiesSignature(t *testing.T) {
	client := NewClient(Config{WebhookSecret: "whsec"})
	payload := []byte(`{"type":"checkout.completed","data":{"sessionId":"cs_1","customerEmail":"a@b.ma","amount":19900,"currency":"mad","metadata":{"productId":"p1"}}}`)

	event, err := client.ParseWebhook(payload, client.Sign(payload))
	require.NoError(t, err)
	assert.Equal(t, shopapp.WebhookCheckoutCompleted, event.Type)
	assert.Equal(t, "cs_1", event.SessionID)
	assert.Equal(t, "p1", event.ProductID)
	assert.Equal(t, 199.0, event.Amount)
	assert.Equal(t, "MAD", event.Currency)

	_, err = client.ParseWebhook(payload, "sha256="+client.Sign(payload))
	assert.NoError(t, err)

	_, err = client.ParseWebhook(payload, "deadbeef")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = client.ParseWebhook(append(payload, ' '), client.Sign(payload))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestParseWebhookWithoutSecretIsRefused(t *testing.T) {
	_, err := NewClient(Config{}).ParseWebhook([]byte(`{}`), "x")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
