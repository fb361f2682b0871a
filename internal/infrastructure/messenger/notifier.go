package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
)

// Failure is an admin alert that could not be delivered to any destination.
type Failure struct {
	Kind        string
	Destination string
	Text        string
	Error       string
	Attempts    int
	CreatedAt   time.Time
}

// FailureStore keeps undelivered alerts for manual replay.
type FailureStore interface {
	Record(ctx context.Context, failure Failure) error
}

// Notifier posts admin alerts to the messenger gateway. Sends run in the
// background so a slow gateway never delays the request that triggered them.
type Notifier struct {
	logger       *slog.Logger
	client       *http.Client
	endpoint     string
	destinations []string
	adminBaseURL string
	attempts     int
	delay        time.Duration
	failures     FailureStore
	wg           sync.WaitGroup
	now          func() time.Time
}

// Config wires a Notifier. Destinations are tried in order; the first that
// accepts the message wins.
type Config struct {
	Logger       *slog.Logger
	HTTPClient   *http.Client
	Endpoint     string
	Destinations []string
	AdminBaseURL string
	Attempts     int
	Delay        time.Duration
	Failures     FailureStore
}

func NewNotifier(cfg Config) *Notifier {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attempts := cfg.Attempts
	if attempts < 1 {
		attempts = 3
	}
	destinations := make([]string, 0, len(cfg.Destinations))
	for _, d := range cfg.Destinations {
		if d = strings.TrimSpace(d); d != "" {
			destinations = append(destinations, d)
		}
	}
	return &Notifier{
		logger:       logger,
		client:       client,
		endpoint:     strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/"),
		destinations: destinations,
		adminBaseURL: strings.TrimRight(strings.TrimSpace(cfg.AdminBaseURL), "/"),
		attempts:     attempts,
		delay:        cfg.Delay,
		failures:     cfg.Failures,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Enabled reports whether alerts go anywhere.
func (n *Notifier) Enabled() bool {
	return n.endpoint != "" && len(n.destinations) > 0
}

// ListingSubmitted alerts the admins about a new listing awaiting review.
func (n *Notifier) ListingSubmitted(_ context.Context, listing domain.Listing) {
	core := listing.Core()
	text := buildListingMessage(n.adminBaseURL, listing.Kind(), core)
	n.dispatch("listing_submitted", "listing-"+core.ID, text)
}

// ReviewSubmitted alerts the admins about a new review awaiting review.
func (n *Notifier) ReviewSubmitted(_ context.Context, review domain.Review, listingName string) {
	text := buildReviewMessage(n.adminBaseURL, review, listingName)
	n.dispatch("review_submitted", "review-"+review.ID, text)
}

// Wait blocks until every background send has finished.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) dispatch(kind, identifier, text string) {
	if !n.Enabled() {
		return
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.deliver(context.Background(), kind, identifier, text)
	}()
}

func (n *Notifier) deliver(ctx context.Context, kind, identifier, text string) {
	var errs []error
	attempts := 0
	for _, dest := range n.destinations {
		err := n.sendWithRetry(ctx, dest, identifier, text)
		attempts += n.attempts
		if err == nil {
			return
		}
		n.logger.Warn("admin notification failed", "destination", dest, "kind", kind, "err", err)
		errs = append(errs, fmt.Errorf("%s: %w", dest, err))
	}
	n.persistFailure(ctx, Failure{
		Kind:        kind,
		Destination: strings.Join(n.destinations, ","),
		Text:        text,
		Error:       errors.Join(errs...).Error(),
		Attempts:    attempts,
		CreatedAt:   n.now(),
	})
}

func (n *Notifier) persistFailure(ctx context.Context, failure Failure) {
	if n.failures == nil {
		return
	}
	if err := n.failures.Record(ctx, failure); err != nil {
		n.logger.Error("failed to persist undelivered notification", "kind", failure.Kind, "err", err)
	}
}

func (n *Notifier) sendWithRetry(ctx context.Context, destination, identifier, text string) error {
	var lastErr error
	for i := 0; i < n.attempts; i++ {
		if lastErr = n.send(ctx, destination, identifier, text); lastErr == nil {
			return nil
		}
		if n.delay > 0 && i < n.attempts-1 {
			timer := time.NewTimer(n.delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	return lastErr
}

func (n *Notifier) send(ctx context.Context, destination, identifier, text string) error {
	body, err := json.Marshal(map[string]any{
		"userId":      identifier,
		"text":        text,
		"destination": destination,
	})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	timeout := n.client.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint+"/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post message: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return fmt.Errorf("messenger status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}
	return nil
}

func buildListingMessage(adminBaseURL string, kind domain.Kind, core *domain.ListingCore) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New %s listing awaiting review: **%s**\n", kind, core.Name)
	if city := core.City.Resolve(domain.LangFR); city != "" {
		fmt.Fprintf(&b, "- City: %s\n", city)
	}
	if email := core.Contact.Email.String(); email != "" {
		fmt.Fprintf(&b, "- Contact: %s\n", email)
	}
	if adminBaseURL != "" && core.ID != "" {
		fmt.Fprintf(&b, "[Open in console](%s/listings/%s/%s)\n", adminBaseURL, kind, core.ID)
	}
	return b.String()
}

func buildReviewMessage(adminBaseURL string, review domain.Review, listingName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New review from **%s** awaiting review\n", review.AuthorName)
	fmt.Fprintf(&b, "- Listing: %s (%s)\n", listingName, review.Target.Kind())
	fmt.Fprintf(&b, "- Rating: %d / %d\n", review.Rating, domain.MaxRating)
	fmt.Fprintf(&b, "- Comment: %s\n", review.Comment)
	if adminBaseURL != "" && review.ID != "" {
		fmt.Fprintf(&b, "[Open in console](%s/reviews/%s)\n", adminBaseURL, review.ID)
	}
	return b.String()
}
