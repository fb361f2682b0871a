package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hostlink-ma/hostlink-services/api/internal/config"
	"github.com/hostlink-ma/hostlink-services/api/internal/interfaces/http/common"
)

const bearerPrefix = "Bearer "

var errInvalidToken = errors.New("access token is invalid")

type authClaims struct {
	jwt.RegisteredClaims
	Name          string   `json:"name,omitempty"`
	Email         string   `json:"email,omitempty"`
	EmailVerified bool     `json:"email_verified,omitempty"`
	Roles         []string `json:"roles,omitempty"`
}

// authenticator verifies HS256 bearer tokens against every configured
// issuer/secret pair.
type authenticator struct {
	logger   *slog.Logger
	configs  []config.JWTConfig
	audience string
	now      func() time.Time
}

func newAuthenticator(logger *slog.Logger, configs []config.JWTConfig, audience string) *authenticator {
	return &authenticator{
		logger:   logger,
		configs:  append([]config.JWTConfig(nil), configs...),
		audience: strings.TrimSpace(audience),
		now:      time.Now,
	}
}

// middleware puts the token's user into the request context or answers 401.
func (a *authenticator) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" {
			common.WriteJSON(a.logger, w, http.StatusUnauthorized, map[string]string{"error": "missing Authorization header"})
			return
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			common.WriteJSON(a.logger, w, http.StatusUnauthorized, map[string]string{"error": "expected a Bearer token"})
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if token == "" {
			common.WriteJSON(a.logger, w, http.StatusUnauthorized, map[string]string{"error": "access token is empty"})
			return
		}

		claims, err := a.parse(token)
		if err != nil {
			common.WriteJSON(a.logger, w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}

		user := common.AuthenticatedUser{
			ID:            claims.Subject,
			Name:          claims.Name,
			Email:         strings.ToLower(strings.TrimSpace(claims.Email)),
			EmailVerified: claims.EmailVerified,
			Roles:         claims.Roles,
		}
		next.ServeHTTP(w, r.WithContext(common.ContextWithUser(r.Context(), user)))
	})
}

// requireAdmin must run after middleware.
func (a *authenticator) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := common.ActorFromContext(r.Context()).RequireAdmin(); err != nil {
			common.WriteError(a.logger, w, r, err, "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *authenticator) parse(tokenString string) (*authClaims, error) {
	if len(a.configs) == 0 {
		return nil, fmt.Errorf("authentication is not configured")
	}

	for _, cfg := range a.configs {
		claims := &authClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
			}
			return cfg.Secret, nil
		}, jwt.WithLeeway(30*time.Second), jwt.WithTimeFunc(a.now))
		if err != nil || !token.Valid {
			continue
		}
		if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
			continue
		}
		if claims.Subject == "" {
			continue
		}
		if a.audience != "" && !slices.Contains(claims.Audience, a.audience) {
			continue
		}
		return claims, nil
	}
	return nil, errInvalidToken
}
