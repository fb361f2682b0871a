package application

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
	"github.com/hostlink-ma/hostlink-services/api/internal/events"
	shopdomain "github.com/hostlink-ma/hostlink-services/api/internal/shop/domain"
)

// StoreService sells digital products through a hosted checkout.
type StoreService struct {
	products        ProductRepository
	purchases       PurchaseRepository
	gateway         PaymentGateway
	files           FileSigner
	publisher       events.Publisher
	confirmAttempts int
	confirmInterval time.Duration
	downloadTTL     time.Duration
	now             func() time.Time
	wait            func(ctx context.Context, d time.Duration) error
}

// StoreConfig wires StoreService.
type StoreConfig struct {
	Products        ProductRepository
	Purchases       PurchaseRepository
	Gateway         PaymentGateway
	Files           FileSigner
	Publisher       events.Publisher
	ConfirmAttempts int
	ConfirmInterval time.Duration
	DownloadTTL     time.Duration
}

func NewStoreService(cfg StoreConfig) *StoreService {
	attempts := cfg.ConfirmAttempts
	if attempts < 1 {
		attempts = 10
	}
	interval := cfg.ConfirmInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ttl := cfg.DownloadTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	publisher := cfg.Publisher
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &StoreService{
		products:        cfg.Products,
		purchases:       cfg.Purchases,
		gateway:         cfg.Gateway,
		files:           cfg.Files,
		publisher:       publisher,
		confirmAttempts: attempts,
		confirmInterval: interval,
		downloadTTL:     ttl,
		now:             func() time.Time { return time.Now().UTC() },
		wait:            sleepContext,
	}
}

// Products lists the active catalogue.
func (s *StoreService) Products(ctx context.Context) ([]shopdomain.Product, error) {
	return s.products.FindActive(ctx)
}

// Product returns one active product by slug.
func (s *StoreService) Product(ctx context.Context, slug string) (shopdomain.Product, error) {
	product, err := s.products.FindBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return shopdomain.Product{}, err
	}
	if !product.Active {
		return shopdomain.Product{}, fmt.Errorf("product %s: %w", slug, apperrors.ErrNotFound)
	}
	return product, nil
}

// Checkout opens a hosted checkout session and returns its redirect URL.
func (s *StoreService) Checkout(ctx context.Context, productID, email string) (CheckoutSession, error) {
	email = strings.TrimSpace(email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return CheckoutSession{}, fmt.Errorf("a valid email is required: %w", apperrors.ErrValidation)
	}
	product, err := s.products.FindByID(ctx, strings.TrimSpace(productID))
	if err != nil {
		return CheckoutSession{}, err
	}
	if !product.Active {
		return CheckoutSession{}, fmt.Errorf("product %s: %w", productID, apperrors.ErrNotFound)
	}
	currency := product.Currency
	if currency == "" {
		currency = shopdomain.DefaultCurrency
	}
	session, err := s.gateway.CreateCheckout(ctx, CheckoutRequest{
		ProductID:   product.ID,
		ProductName: product.LocalizedTitle("fr"),
		Amount:      product.Price,
		Currency:    currency,
		Email:       email,
	})
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("create checkout: %w: %w", apperrors.ErrDependency, err)
	}
	if session.RedirectURL == "" {
		return CheckoutSession{}, fmt.Errorf("gateway returned no redirect url: %w", apperrors.ErrDependency)
	}
	return session, nil
}

// HandleWebhook verifies a gateway notification and records the purchase.
// Replays of the same session are accepted and change nothing.
func (s *StoreService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		return err
	}
	if event.Type != WebhookCheckoutCompleted {
		return nil
	}
	if strings.TrimSpace(event.SessionID) == "" {
		return fmt.Errorf("webhook without session id: %w", apperrors.ErrValidation)
	}
	created, err := s.purchases.Upsert(ctx, shopdomain.Purchase{
		SessionID: event.SessionID,
		ProductID: event.ProductID,
		Email:     strings.ToLower(strings.TrimSpace(event.Email)),
		Amount:    event.Amount,
		Currency:  event.Currency,
		Status:    shopdomain.PurchaseStatusPaid,
		CreatedAt: s.now(),
	})
	if err != nil {
		return fmt.Errorf("record purchase %s: %w", event.SessionID, err)
	}
	if created {
		s.publisher.Publish(ctx, events.New(events.PurchaseCompleted, map[string]any{
			"sessionId": event.SessionID,
			"productId": event.ProductID,
			"amount":    event.Amount,
			"currency":  event.Currency,
		}))
	}
	return nil
}

// Confirm polls for the purchase record a fixed number of times at a fixed
// interval. When the webhook has landed it returns a signed download link;
// otherwise Ready is false and the client may ask again later.
func (s *StoreService) Confirm(ctx context.Context, sessionID string) (Confirmation, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return Confirmation{}, fmt.Errorf("session id is required: %w", apperrors.ErrValidation)
	}
	for attempt := 1; attempt <= s.confirmAttempts; attempt++ {
		purchase, err := s.purchases.FindBySession(ctx, sessionID)
		switch {
		case err == nil:
			return s.confirmation(ctx, purchase)
		case !errors.Is(err, apperrors.ErrNotFound):
			return Confirmation{}, fmt.Errorf("find purchase %s: %w", sessionID, err)
		}
		if attempt == s.confirmAttempts {
			break
		}
		if err := s.wait(ctx, s.confirmInterval); err != nil {
			return Confirmation{}, err
		}
	}
	return Confirmation{Ready: false}, nil
}

func (s *StoreService) confirmation(ctx context.Context, purchase shopdomain.Purchase) (Confirmation, error) {
	product, err := s.products.FindByID(ctx, purchase.ProductID)
	if err != nil {
		return Confirmation{}, fmt.Errorf("product of purchase %s: %w", purchase.SessionID, err)
	}
	url, err := s.files.SignedURL(ctx, product.FileKey, s.downloadTTL)
	if err != nil {
		return Confirmation{}, fmt.Errorf("sign download: %w: %w", apperrors.ErrDependency, err)
	}
	return Confirmation{Ready: true, Purchase: purchase, DownloadURL: url}, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
