package domain

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
)

type Email string

// NewEmail accepts an empty value (optional contact) or a single RFC 5322 address.
func NewEmail(value string) (Email, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if len(trimmed) > 254 {
		return "", fmt.Errorf("email too long: %w", apperrors.ErrValidation)
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", fmt.Errorf("invalid email %q: %w", trimmed, apperrors.ErrValidation)
	}
	return Email(trimmed), nil
}

// NewRequiredEmail is NewEmail that rejects blanks.
func NewRequiredEmail(value string) (Email, error) {
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("email is required: %w", apperrors.ErrValidation)
	}
	return NewEmail(value)
}

func (e Email) String() string {
	return string(e)
}

type URL string

func NewURL(value string) (URL, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if err := checkHTTPURL(trimmed); err != nil {
		return "", err
	}
	return URL(trimmed), nil
}

func (u URL) String() string {
	return string(u)
}

type PhotoURL string

func NewPhotoURL(value string) (PhotoURL, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("photo URL is required: %w", apperrors.ErrValidation)
	}
	if err := checkHTTPURL(trimmed); err != nil {
		return "", err
	}
	return PhotoURL(trimmed), nil
}

func (u PhotoURL) String() string {
	return string(u)
}

// NewURLList validates and de-duplicates external links, keeping first-seen order.
func NewURLList(values []string, limit int) ([]string, error) {
	if limit > 0 && len(values) > limit {
		return nil, fmt.Errorf("at most %d links allowed: %w", limit, apperrors.ErrValidation)
	}
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, raw := range values {
		u, err := NewURL(raw)
		if err != nil {
			return nil, err
		}
		if u == "" {
			continue
		}
		if _, ok := seen[u.String()]; ok {
			continue
		}
		seen[u.String()] = struct{}{}
		result = append(result, u.String())
	}
	return result, nil
}

func checkHTTPURL(raw string) error {
	parsed, err := url.ParseRequestURI(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, apperrors.ErrValidation)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL %q must use http or https: %w", raw, apperrors.ErrValidation)
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL %q has no host: %w", raw, apperrors.ErrValidation)
	}
	return nil
}
