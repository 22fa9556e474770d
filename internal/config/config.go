package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Gateway names accepted by PAYMENT_GATEWAY.
const (
	GatewayStripe = "stripe"
	GatewayMock   = "mock"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port int

	// StripeSecretKey may be empty: the checkout endpoint then fails per request.
	StripeSecretKey     string
	StripeWebhookSecret string
	StripeAPIURL        string
	PaymentGateway      string

	FallbackOrigin           string
	ProviderTimeout          time.Duration
	ProviderErrorPassthrough bool

	JWTSecret   string
	DatabaseURL string
	CORSOrigins []string

	RateLimitRPS   float64
	RateLimitBurst int
}

// LoadDotEnv reads .env files if they exist (local development only).
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			log.Printf("⚠️  Failed to load %s: %v", f, err)
		}
	}
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "5000"))
	if err != nil {
		return nil, fmt.Errorf("PORT must be a number: %w", err)
	}

	gateway := strings.ToLower(getEnv("PAYMENT_GATEWAY", GatewayStripe))
	if gateway != GatewayStripe && gateway != GatewayMock {
		return nil, fmt.Errorf("PAYMENT_GATEWAY must be %q or %q, got %q", GatewayStripe, GatewayMock, gateway)
	}

	timeout, err := time.ParseDuration(getEnv("PROVIDER_TIMEOUT", "15s"))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("PROVIDER_TIMEOUT must be a positive duration")
	}

	passthrough, err := strconv.ParseBool(getEnv("PROVIDER_ERROR_PASSTHROUGH", "false"))
	if err != nil {
		return nil, fmt.Errorf("PROVIDER_ERROR_PASSTHROUGH must be a boolean: %w", err)
	}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "20"), 64)
	if err != nil || rps <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS must be a positive number")
	}
	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "40"))
	if err != nil || burst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_BURST must be a positive integer")
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		jwtSecret, err = randomSecret()
		if err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		log.Println("⚠️  JWT_SECRET not set, using a per-process secret (tokens will not survive restarts)")
	}

	return &Config{
		Port:                     port,
		StripeSecretKey:          strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY")),
		StripeWebhookSecret:      strings.TrimSpace(os.Getenv("STRIPE_WEBHOOK_SECRET")),
		StripeAPIURL:             getEnv("STRIPE_API_URL", ""),
		PaymentGateway:           gateway,
		FallbackOrigin:           strings.TrimRight(getEnv("CHECKOUT_FALLBACK_ORIGIN", "http://localhost:5173"), "/"),
		ProviderTimeout:          timeout,
		ProviderErrorPassthrough: passthrough,
		JWTSecret:                jwtSecret,
		DatabaseURL:              getEnv("DATABASE_URL", ""),
		CORSOrigins:              splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		RateLimitRPS:             rps,
		RateLimitBurst:           burst,
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
