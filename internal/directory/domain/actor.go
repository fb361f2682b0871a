package domain

import (
	"fmt"
	"strings"

	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
)

// RoleAdmin grants the moderation capability.
const RoleAdmin = "admin"

// Actor is the authenticated principal performing an operation.
type Actor struct {
	ID            string
	Email         string
	EmailVerified bool
	Roles         []string
}

// IsAdmin reports whether the actor holds the admin capability.
func (a Actor) IsAdmin() bool {
	for _, role := range a.Roles {
		if strings.EqualFold(strings.TrimSpace(role), RoleAdmin) {
			return true
		}
	}
	return false
}

// RequireAdmin fails with ErrForbidden unless the actor is an admin.
func (a Actor) RequireAdmin() error {
	if !a.IsAdmin() {
		return fmt.Errorf("admin capability required: %w", apperrors.ErrForbidden)
	}
	return nil
}

// RequireIdentity fails with ErrUnauthenticated for anonymous actors.
func (a Actor) RequireIdentity() error {
	if strings.TrimSpace(a.ID) == "" {
		return apperrors.ErrUnauthenticated
	}
	return nil
}
