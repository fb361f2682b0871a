package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
)

// DefaultCurrency is used when a product does not set one.
const DefaultCurrency = "MAD"

// Product is a downloadable digital good (guides, templates, checklists).
type Product struct {
	ID          string
	Slug        string
	Title       map[string]string
	Description map[string]string
	Price       float64
	Currency    string
	FileKey     string
	Active      bool
	CreatedAt   time.Time
}

// LocalizedTitle returns the title for lang with French fallback.
func (p Product) LocalizedTitle(lang string) string {
	return pick(p.Title, lang)
}

// LocalizedDescription returns the description for lang with French fallback.
func (p Product) LocalizedDescription(lang string) string {
	return pick(p.Description, lang)
}

// Validate checks the catalogue invariants.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Slug) == "" {
		return fmt.Errorf("product slug is required: %w", apperrors.ErrValidation)
	}
	if pick(p.Title, "fr") == "" {
		return fmt.Errorf("product %s needs a French title: %w", p.Slug, apperrors.ErrValidation)
	}
	if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) || p.Price <= 0 {
		return fmt.Errorf("product %s needs a positive price: %w", p.Slug, apperrors.ErrValidation)
	}
	if strings.TrimSpace(p.FileKey) == "" {
		return fmt.Errorf("product %s has no file: %w", p.Slug, apperrors.ErrValidation)
	}
	return nil
}

// PurchaseStatusPaid is the only state a purchase record is written in.
const PurchaseStatusPaid = "paid"

// Purchase is the record of a completed checkout, keyed by the gateway session.
type Purchase struct {
	SessionID string
	ProductID string
	Email     string
	Amount    float64
	Currency  string
	Status    string
	CreatedAt time.Time
}

func pick(values map[string]string, lang string) string {
	if v := strings.TrimSpace(values[lang]); v != "" {
		return v
	}
	return strings.TrimSpace(values["fr"])
}
