package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")

	cfg, err := fromEnv()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "concierges", cfg.Collections.Concierges)
	assert.Equal(t, "calculator_leads", cfg.Collections.Leads)
	assert.Equal(t, "failed_notifications", cfg.Collections.FailedNotifications)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 10, cfg.ConfirmAttempts)
	assert.Equal(t, 2*time.Second, cfg.ConfirmInterval)
	require.Len(t, cfg.JWTConfigs, 1)
	assert.Equal(t, "hostlink-auth", cfg.JWTConfigs[0].Issuer)
	assert.False(t, cfg.Media.Enabled())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "a")
	t.Setenv("AUTH_GOOGLE_JWT_SECRET", "b")
	t.Setenv("API_ALLOWED_ORIGINS", "https://hostlink.ma, ,https://admin.hostlink.ma")
	t.Setenv("PURCHASE_CONFIRM_ATTEMPTS", "4")
	t.Setenv("PURCHASE_CONFIRM_INTERVAL", "500ms")
	t.Setenv("MEDIA_S3_BUCKET", "hostlink-media")
	t.Setenv("MEDIA_BASE_URL", "https://media.hostlink.ma/")

	cfg, err := fromEnv()

	require.NoError(t, err)
	assert.Len(t, cfg.JWTConfigs, 2)
	assert.Equal(t, []string{"https://hostlink.ma", "https://admin.hostlink.ma"}, cfg.AllowedOrigins)
	assert.Equal(t, 4, cfg.ConfirmAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.ConfirmInterval)
	assert.True(t, cfg.Media.Enabled())
	assert.Equal(t, "https://media.hostlink.ma", cfg.Media.BaseURL)
}

func TestFromEnvReportsEveryProblem(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("AUTH_GOOGLE_JWT_SECRET", "")
	t.Setenv("REQUEST_TIMEOUT", "soon")
	t.Setenv("PAYMENT_API_URL", "https://pay.example.com")

	_, err := fromEnv()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT secrets not configured")
	assert.Contains(t, err.Error(), "REQUEST_TIMEOUT")
	assert.Contains(t, err.Error(), "PAYMENT_WEBHOOK_SECRET")
}
