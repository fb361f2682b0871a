package application

import (
	"context"
	"time"

	shopdomain "github.com/hostlink-ma/hostlink-services/api/internal/shop/domain"
)

// ProductRepository reads the catalogue.
type ProductRepository interface {
	FindActive(ctx context.Context) ([]shopdomain.Product, error)
	FindBySlug(ctx context.Context, slug string) (shopdomain.Product, error)
	FindByID(ctx context.Context, id string) (shopdomain.Product, error)
}

// PurchaseRepository records completed checkouts.
type PurchaseRepository interface {
	// Upsert inserts the purchase unless a record with the same session id exists.
	Upsert(ctx context.Context, purchase shopdomain.Purchase) (created bool, err error)
	FindBySession(ctx context.Context, sessionID string) (shopdomain.Purchase, error)
}

// PaymentGateway is the hosted checkout provider.
type PaymentGateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (CheckoutSession, error)
	// ParseWebhook verifies the signature and decodes the event.
	ParseWebhook(payload []byte, signature string) (WebhookEvent, error)
}

// FileSigner signs time-limited download links.
type FileSigner interface {
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// CheckoutRequest is sent to the gateway.
type CheckoutRequest struct {
	ProductID   string
	ProductName string
	Amount      float64
	Currency    string
	Email       string
}

// CheckoutSession is the gateway's answer: a session id plus the hosted page.
type CheckoutSession struct {
	ID          string
	RedirectURL string
}

// WebhookEvent is a verified gateway notification.
type WebhookEvent struct {
	Type      string
	SessionID string
	ProductID string
	Email     string
	Amount    float64
	Currency  string
}

// WebhookCheckoutCompleted is the event type that records a purchase.
const WebhookCheckoutCompleted = "checkout.completed"

// Confirmation is the outcome of polling for a purchase.
type Confirmation struct {
	Ready       bool
	Purchase    shopdomain.Purchase
	DownloadURL string
}
