package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hostlink-ma/hostlink-services/api/internal/config"
	"github.com/hostlink-ma/hostlink-services/api/internal/interfaces/http/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	siteSecret   = []byte("site-secret")
	googleSecret = []byte("google-secret")
)

func newTestAuthenticator() *authenticator {
	return newAuthenticator(nil, []config.JWTConfig{
		{Issuer: "hostlink-auth", Secret: siteSecret},
		{Issuer: "auth-google", Secret: googleSecret},
	}, "hostlink-web")
}

func sign(t *testing.T, secret []byte, claims authClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func validClaims(issuer string) authClaims {
	now := time.Now()
	return authClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   "user-1",
			Audience:  jwt.ClaimStrings{"hostlink-web"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Name:          "Yasmine",
		Email:         "Yasmine@Example.MA",
		EmailVerified: true,
	}
}

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_ = json.NewEncoder(w).Encode(user)
	})
}

func request(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

func TestMiddlewareAcceptsEveryConfiguredIssuer(t *testing.T) {
	a := newTestAuthenticator()

	for issuer, secret := range map[string][]byte{"hostlink-auth": siteSecret, "auth-google": googleSecret} {
		w := httptest.NewRecorder()
		a.middleware(echoUser()).ServeHTTP(w, request(sign(t, secret, validClaims(issuer))))

		require.Equal(t, http.StatusOK, w.Code, issuer)
		var user common.AuthenticatedUser
		require.NoError(t, json.NewDecoder(w.Body).Decode(&user))
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, "yasmine@example.ma", user.Email)
		assert.True(t, user.EmailVerified)
	}
}

func TestMiddlewareRejectsBadTokens(t *testing.T) {
	a := newTestAuthenticator()

	expired := validClaims("hostlink-auth")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	wrongAudience := validClaims("hostlink-auth")
	wrongAudience.Audience = jwt.ClaimStrings{"other-app"}

	noSubject := validClaims("hostlink-auth")
	noSubject.Subject = ""

	cases := map[string]string{
		"missing":        "",
		"garbage":        "not-a-jwt",
		"wrong secret":   sign(t, []byte("nope"), validClaims("hostlink-auth")),
		"issuer swap":    sign(t, siteSecret, validClaims("auth-google")),
		"expired":        sign(t, siteSecret, expired),
		"wrong audience": sign(t, siteSecret, wrongAudience),
		"no subject":     sign(t, siteSecret, noSubject),
	}
	for name, token := range cases {
		w := httptest.NewRecorder()
		a.middleware(echoUser()).ServeHTTP(w, request(token))
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
	}
}

func TestMiddlewareRejectsNonBearerScheme(t *testing.T) {
	a := newTestAuthenticator()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()

	a.middleware(echoUser()).ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	a := newTestAuthenticator()
	handler := a.middleware(a.requireAdmin(echoUser()))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, request(sign(t, siteSecret, validClaims("hostlink-auth"))))
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := validClaims("hostlink-auth")
	admin.Roles = []string{"admin"}
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, request(sign(t, siteSecret, admin)))
	assert.Equal(t, http.StatusOK, w.Code)
}
