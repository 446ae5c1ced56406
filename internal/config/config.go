package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string

	SquareAccessToken string
	SquareLocationID  string
	SquareBaseURL     string
	SquareSandbox     bool
	SquareTimeout     time.Duration

	BookingCurrency string
	ShopPhone       string

	// Delay between a service selection and the barber/availability fetch.
	WidgetSelectDelay time.Duration
	WidgetSessionTTL  time.Duration

	RedisAddr       string
	RedisPassword   string
	CatalogCacheTTL time.Duration

	// Per-IP rate limit on checkout link creation. Zero disables it.
	CheckoutRatePerSec float64
	CheckoutBurst      int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "")),

		SquareAccessToken: getEnv("SQUARE_ACCESS_TOKEN", ""),
		SquareLocationID:  getEnv("SQUARE_LOCATION_ID", ""),
		SquareBaseURL:     getEnv("SQUARE_BASE_URL", ""),
		SquareSandbox:     getEnvAsBool("SQUARE_SANDBOX", true),
		SquareTimeout:     getEnvAsDuration("SQUARE_TIMEOUT", 10*time.Second),

		BookingCurrency: getEnv("BOOKING_CURRENCY", "USD"),
		ShopPhone:       getEnv("SHOP_PHONE", "+19255550123"),

		WidgetSelectDelay: getEnvAsDuration("WIDGET_SELECT_DELAY", 800*time.Millisecond),
		WidgetSessionTTL:  getEnvAsDuration("WIDGET_SESSION_TTL", 30*time.Minute),

		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		CatalogCacheTTL: getEnvAsDuration("CATALOG_CACHE_TTL", 5*time.Minute),

		CheckoutRatePerSec: getEnvAsFloat("CHECKOUT_RATE_PER_SEC", 1),
		CheckoutBurst:      getEnvAsInt("CHECKOUT_BURST", 5),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
