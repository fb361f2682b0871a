package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
)

// Lead is a captured email plus a snapshot of the calculator state at capture
// time. Inputs and Estimate are plain values, so later edits to the caller's
// copies never reach a stored lead. Leads are never updated.
type Lead struct {
	ID         string
	Email      string
	Inputs     Inputs
	Estimate   Estimate
	CapturedAt time.Time
}

// NewLead validates email and snapshots the calculator state.
func NewLead(email string, inputs Inputs, estimate Estimate, now time.Time) (Lead, error) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return Lead{}, fmt.Errorf("email is required: %w", apperrors.ErrValidation)
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed || len(trimmed) > 254 {
		return Lead{}, fmt.Errorf("invalid email %q: %w", trimmed, apperrors.ErrValidation)
	}
	return Lead{
		Email:      normalizeEmail(trimmed),
		Inputs:     inputs,
		Estimate:   estimate,
		CapturedAt: now,
	}, nil
}

// normalizeEmail lowercases the domain only. The local part is case-sensitive.
func normalizeEmail(addr string) string {
	at := strings.LastIndex(addr, "@")
	if at < 0 {
		return addr
	}
	return addr[:at+1] + strings.ToLower(addr[at+1:])
}
