package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	BaseURL     string
	PostgresDSN string

	StripeSecretKey string
	Currency        string

	SessionTTL      time.Duration
	MinPodcastPrice int64

	EmailLabsAppKey      string
	EmailLabsSecretKey   string
	EmailLabsFromEmail   string
	EmailLabsSMTPAccount string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string

	EnableReceiptEmails        bool
	EnableSettlementReconciler bool
	ReconcilerPendingOlderThan time.Duration
	WorkerPollInterval         time.Duration
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "devbytes"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	baseURL := strings.TrimRight(os.Getenv("BASE_URL"), "/")
	if baseURL == "" {
		baseURL = "http://localhost:" + port
	}

	currency := strings.ToLower(strings.TrimSpace(os.Getenv("CURRENCY")))
	if currency == "" {
		currency = "pln"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		BaseURL:     baseURL,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		Currency:        currency,

		SessionTTL:      time.Duration(envInt64("SESSION_TTL_HOURS", 7*24)) * time.Hour,
		MinPodcastPrice: envInt64("MIN_PODCAST_PRICE_CENTS", 100),

		EmailLabsAppKey:      os.Getenv("EMAILLABS_APP_KEY"),
		EmailLabsSecretKey:   os.Getenv("EMAILLABS_SECRET_KEY"),
		EmailLabsFromEmail:   os.Getenv("EMAILLABS_FROM_EMAIL"),
		EmailLabsSMTPAccount: os.Getenv("EMAILLABS_SMTP_ACCOUNT"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    os.Getenv("S3_REGION"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),

		EnableReceiptEmails:        envBool("ENABLE_RECEIPT_EMAILS", true),
		EnableSettlementReconciler: envBool("ENABLE_SETTLEMENT_RECONCILER", true),
		ReconcilerPendingOlderThan: time.Duration(envInt64("RECONCILER_PENDING_OLDER_THAN_MINUTES", 15)) * time.Minute,
		WorkerPollInterval:         time.Duration(envInt64("WORKER_POLL_INTERVAL_SECONDS", 5)) * time.Second,
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envInt64(name string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
