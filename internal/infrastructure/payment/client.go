package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
	shopapp "github.com/hostlink-ma/hostlink-services/api/internal/shop/application"
)

// SignatureHeader carries the hex HMAC-SHA256 of the webhook body.
const SignatureHeader = "X-Signature"

// Config wires the hosted checkout client.
type Config struct {
	BaseURL       string
	APIKey        string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
	HTTPClient    *http.Client
}

// Client talks to the hosted checkout provider.
type Client struct {
	baseURL    string
	apiKey     string
	secret     []byte
	successURL string
	cancelURL  string
	http       *http.Client
}

func NewClient(cfg Config) *Client {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:     cfg.APIKey,
		secret:     []byte(cfg.WebhookSecret),
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
		http:       client,
	}
}

type checkoutPayload struct {
	Amount        int64             `json:"amount"`
	Currency      string            `json:"currency"`
	ProductName   string            `json:"productName"`
	CustomerEmail string            `json:"customerEmail"`
	SuccessURL    string            `json:"successUrl,omitempty"`
	CancelURL     string            `json:"cancelUrl,omitempty"`
	Metadata      map[string]string `json:"metadata"`
}

type checkoutResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateCheckout opens a hosted checkout session. Amounts are sent in minor units.
func (c *Client) CreateCheckout(ctx context.Context, req shopapp.CheckoutRequest) (shopapp.CheckoutSession, error) {
	if c.baseURL == "" {
		return shopapp.CheckoutSession{}, errors.New("payment gateway is not configured")
	}
	body, err := json.Marshal(checkoutPayload{
		Amount:        toMinorUnits(req.Amount),
		Currency:      strings.ToLower(req.Currency),
		ProductName:   req.ProductName,
		CustomerEmail: req.Email,
		SuccessURL:    c.successURL,
		CancelURL:     c.cancelURL,
		Metadata:      map[string]string{"productId": req.ProductID},
	})
	if err != nil {
		return shopapp.CheckoutSession{}, fmt.Errorf("encode checkout: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return shopapp.CheckoutSession{}, fmt.Errorf("build checkout request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.http.Do(httpReq)
	if err != nil {
		return shopapp.CheckoutSession{}, fmt.Errorf("post checkout: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return shopapp.CheckoutSession{}, fmt.Errorf("checkout status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}
	var out checkoutResponse
	if err := json.NewDecoder(io.LimitReader(res.Body, 1<<20)).Decode(&out); err != nil {
		return shopapp.CheckoutSession{}, fmt.Errorf("decode checkout: %w", err)
	}
	return shopapp.CheckoutSession{ID: out.ID, RedirectURL: out.URL}, nil
}

type webhookPayload struct {
	Type string `json:"type"`
	Data struct {
		SessionID     string            `json:"sessionId"`
		CustomerEmail string            `json:"customerEmail"`
		Amount        int64             `json:"amount"`
		Currency      string            `json:"currency"`
		Metadata      map[string]string `json:"metadata"`
	} `json:"data"`
}

// ParseWebhook verifies the signature of payload before decoding it.
func (c *Client) ParseWebhook(payload []byte, signature string) (shopapp.WebhookEvent, error) {
	if len(c.secret) == 0 {
		return shopapp.WebhookEvent{}, fmt.Errorf("webhook secret is not configured: %w", apperrors.ErrForbidden)
	}
	if !c.validSignature(payload, signature) {
		return shopapp.WebhookEvent{}, fmt.Errorf("invalid webhook signature: %w", apperrors.ErrForbidden)
	}
	var body webhookPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return shopapp.WebhookEvent{}, fmt.Errorf("decode webhook: %w", apperrors.ErrValidation)
	}
	return shopapp.WebhookEvent{
		Type:      body.Type,
		SessionID: body.Data.SessionID,
		ProductID: body.Data.Metadata["productId"],
		Email:     body.Data.CustomerEmail,
		Amount:    float64(body.Data.Amount) / 100,
		Currency:  strings.ToUpper(body.Data.Currency),
	}, nil
}

// Sign returns the signature the provider would send for payload.
func (c *Client) Sign(payload []byte) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *Client) validSignature(payload []byte, signature string) bool {
	signature = strings.TrimPrefix(strings.TrimSpace(signature), "sha256=")
	if signature == "" {
		return false
	}
	return hmac.Equal([]byte(c.Sign(payload)), []byte(strings.ToLower(signature)))
}

func toMinorUnits(amount float64) int64 {
	if amount <= 0 {
		return 0
	}
	return int64(amount*100 + 0.5)
}
