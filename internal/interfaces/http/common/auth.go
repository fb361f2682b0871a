package common

import (
	"context"

	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
)

type contextKey string

const authUserContextKey contextKey = "authUser"

// AuthenticatedUser represents the JWT-derived principal.
type AuthenticatedUser struct {
	ID            string   `json:"id"`
	Name          string   `json:"name,omitempty"`
	Email         string   `json:"email,omitempty"`
	EmailVerified bool     `json:"emailVerified"`
	Roles         []string `json:"roles,omitempty"`
}

// Actor converts the principal into the domain actor.
func (u AuthenticatedUser) Actor() domain.Actor {
	return domain.Actor{
		ID:            u.ID,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		Roles:         append([]string(nil), u.Roles...),
	}
}

// ContextWithUser stores the authenticated user into context.
func ContextWithUser(ctx context.Context, user AuthenticatedUser) context.Context {
	return context.WithValue(ctx, authUserContextKey, user)
}

// UserFromContext extracts the authenticated user from context.
func UserFromContext(ctx context.Context) (AuthenticatedUser, bool) {
	user, ok := ctx.Value(authUserContextKey).(AuthenticatedUser)
	return user, ok
}

// ActorFromContext returns the actor for the request, anonymous when no token was verified.
func ActorFromContext(ctx context.Context) domain.Actor {
	user, ok := UserFromContext(ctx)
	if !ok {
		return domain.Actor{}
	}
	return user.Actor()
}
