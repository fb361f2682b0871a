package shop

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hostlink-ma/hostlink-services/api/internal/interfaces/http/common"
	shopapp "github.com/hostlink-ma/hostlink-services/api/internal/shop/application"
	shopdomain "github.com/hostlink-ma/hostlink-services/api/internal/shop/domain"
)

const defaultSignatureHeader = "X-Signature"

// Store is the storefront use case surface.
type Store interface {
	Products(ctx context.Context) ([]shopdomain.Product, error)
	Product(ctx context.Context, slug string) (shopdomain.Product, error)
	Checkout(ctx context.Context, productID, email string) (shopapp.CheckoutSession, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	Confirm(ctx context.Context, sessionID string) (shopapp.Confirmation, error)
}

// Handler serves the storefront.
type Handler struct {
	logger          *slog.Logger
	store           Store
	validator       *common.Validator
	signatureHeader string
	confirmTimeout  time.Duration
}

// Config provides dependencies for Handler. ConfirmTimeout must cover the
// whole polling window of Store.Confirm.
type Config struct {
	Logger          *slog.Logger
	Store           Store
	Validator       *common.Validator
	SignatureHeader string
	ConfirmTimeout  time.Duration
}

func NewHandler(cfg Config) *Handler {
	v := cfg.Validator
	if v == nil {
		v = common.NewValidator()
	}
	header := cfg.SignatureHeader
	if header == "" {
		header = defaultSignatureHeader
	}
	timeout := cfg.ConfirmTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Handler{
		logger:          cfg.Logger,
		store:           cfg.Store,
		validator:       v,
		signatureHeader: header,
		confirmTimeout:  timeout,
	}
}

// Register mounts the storefront under the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/shop/products", h.productListHandler())
	r.Get("/shop/products/{slug}", h.productDetailHandler())
	r.Post("/shop/checkout", h.checkoutHandler())
	r.Post("/shop/webhook", h.webhookHandler())
	r.Get("/shop/purchases/{sessionID}", h.purchaseHandler())
}
