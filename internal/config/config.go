package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// JWTConfig defines issuer/secret pair for auth verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Collections names every MongoDB collection the API touches.
type Collections struct {
	Concierges          string
	Cleanings           string
	Designers           string
	Reviews             string
	Leads               string
	Products            string
	Purchases           string
	FailedNotifications string
}

// StorageConfig describes an S3-compatible bucket.
type StorageConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	BaseURL   string
}

// Enabled reports whether the bucket is configured.
func (s StorageConfig) Enabled() bool {
	return strings.TrimSpace(s.Bucket) != ""
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr           string
	MongoURI       string
	MongoDatabase  string
	Collections    Collections
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
	AllowedOrigins []string

	LogLevel  string
	LogFormat string

	JWTConfigs  []JWTConfig
	JWTAudience string

	MessengerEndpoint     string
	MessengerDestinations []string
	MessengerTimeout      time.Duration
	MessengerAttempts     int
	MessengerRetryDelay   time.Duration
	AdminConsoleURL       string

	RabbitMQURL      string
	RabbitMQExchange string

	Media StorageConfig
	Files StorageConfig

	PaymentBaseURL       string
	PaymentAPIKey        string
	PaymentWebhookSecret string
	PaymentSuccessURL    string
	PaymentCancelURL     string
	ConfirmAttempts      int
	ConfirmInterval      time.Duration
	DownloadTTL          time.Duration

	ReportKey string
	ReportTTL time.Duration
}

// Load reads a .env file when present, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return fromEnv()
}

func fromEnv() (Config, error) {
	var errs []error
	duration := func(key string, fallback time.Duration) time.Duration {
		d, err := parseDuration(key, fallback)
		if err != nil {
			errs = append(errs, err)
		}
		return d
	}
	integer := func(key string, fallback int) int {
		n, err := parseInt(key, fallback)
		if err != nil {
			errs = append(errs, err)
		}
		return n
	}

	var jwtConfigs []JWTConfig
	if secret := strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("AUTH_JWT_ISSUER", "hostlink-auth"),
			Secret: []byte(secret),
		})
	}
	if secret := strings.TrimSpace(os.Getenv("AUTH_GOOGLE_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("AUTH_GOOGLE_JWT_ISSUER", "auth-google"),
			Secret: []byte(secret),
		})
	}
	if len(jwtConfigs) == 0 {
		errs = append(errs, errors.New("JWT secrets not configured: set AUTH_JWT_SECRET or AUTH_GOOGLE_JWT_SECRET"))
	}

	cfg := Config{
		Addr:          envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:      envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase: envOrDefault("MONGO_DB", "hostlink"),
		Collections: Collections{
			Concierges:          envOrDefault("CONCIERGE_COLLECTION", "concierges"),
			Cleanings:           envOrDefault("CLEANING_COLLECTION", "cleanings"),
			Designers:           envOrDefault("DESIGNER_COLLECTION", "designers"),
			Reviews:             envOrDefault("REVIEW_COLLECTION", "reviews"),
			Leads:               envOrDefault("LEAD_COLLECTION", "calculator_leads"),
			Products:            envOrDefault("PRODUCT_COLLECTION", "products"),
			Purchases:           envOrDefault("PURCHASE_COLLECTION", "purchases"),
			FailedNotifications: envOrDefault("FAILED_NOTIFICATION_COLLECTION", "failed_notifications"),
		},
		ConnectTimeout: duration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		RequestTimeout: duration("REQUEST_TIMEOUT", 5*time.Second),
		AllowedOrigins: parseList("API_ALLOWED_ORIGINS", []string{"*"}),

		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "color"),

		JWTConfigs:  jwtConfigs,
		JWTAudience: strings.TrimSpace(os.Getenv("AUTH_JWT_AUDIENCE")),

		MessengerEndpoint:     strings.TrimSpace(os.Getenv("MESSENGER_GATEWAY_URL")),
		MessengerDestinations: parseList("MESSENGER_ADMIN_DESTINATIONS", []string{"discord"}),
		MessengerTimeout:      duration("MESSENGER_GATEWAY_TIMEOUT", 3*time.Second),
		MessengerAttempts:     integer("MESSENGER_RETRY_ATTEMPTS", 3),
		MessengerRetryDelay:   duration("MESSENGER_RETRY_DELAY", 200*time.Millisecond),
		AdminConsoleURL:       strings.TrimRight(strings.TrimSpace(os.Getenv("ADMIN_CONSOLE_URL")), "/"),

		RabbitMQURL:      strings.TrimSpace(os.Getenv("RABBITMQ_URL")),
		RabbitMQExchange: envOrDefault("RABBITMQ_EXCHANGE", "hostlink.events"),

		Media: storageFromEnv("MEDIA"),
		Files: storageFromEnv("FILES"),

		PaymentBaseURL:       strings.TrimSpace(os.Getenv("PAYMENT_API_URL")),
		PaymentAPIKey:        strings.TrimSpace(os.Getenv("PAYMENT_API_KEY")),
		PaymentWebhookSecret: strings.TrimSpace(os.Getenv("PAYMENT_WEBHOOK_SECRET")),
		PaymentSuccessURL:    strings.TrimSpace(os.Getenv("PAYMENT_SUCCESS_URL")),
		PaymentCancelURL:     strings.TrimSpace(os.Getenv("PAYMENT_CANCEL_URL")),
		ConfirmAttempts:      integer("PURCHASE_CONFIRM_ATTEMPTS", 10),
		ConfirmInterval:      duration("PURCHASE_CONFIRM_INTERVAL", 2*time.Second),
		DownloadTTL:          duration("DOWNLOAD_URL_TTL", 24*time.Hour),

		ReportKey: strings.TrimSpace(os.Getenv("CALCULATOR_REPORT_KEY")),
		ReportTTL: duration("CALCULATOR_REPORT_TTL", time.Hour),
	}

	if cfg.PaymentBaseURL != "" && cfg.PaymentWebhookSecret == "" {
		errs = append(errs, errors.New("PAYMENT_WEBHOOK_SECRET must be configured with PAYMENT_API_URL"))
	}
	if cfg.ConfirmAttempts < 1 {
		errs = append(errs, errors.New("PURCHASE_CONFIRM_ATTEMPTS must be at least 1"))
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func storageFromEnv(prefix string) StorageConfig {
	return StorageConfig{
		Endpoint:  strings.TrimSpace(os.Getenv(prefix + "_S3_ENDPOINT")),
		Region:    envOrDefault(prefix+"_S3_REGION", "auto"),
		AccessKey: strings.TrimSpace(os.Getenv(prefix + "_S3_ACCESS_KEY")),
		SecretKey: strings.TrimSpace(os.Getenv(prefix + "_S3_SECRET_KEY")),
		Bucket:    strings.TrimSpace(os.Getenv(prefix + "_S3_BUCKET")),
		BaseURL:   strings.TrimRight(strings.TrimSpace(os.Getenv(prefix+"_BASE_URL")), "/"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func parseInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
