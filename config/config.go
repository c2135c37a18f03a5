// Package config loads settings from a .env file and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Client side
	APIURL      string
	LoginURL    string
	CheckoutURL string
	StoragePath string
	HTTPTimeout time.Duration

	// Backend side
	Port        string
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration
	AdminAPIKey string

	LogLevel string
}

// Load reads .env (if present) and then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		APIURL:      getenv("STOREFRONT_API_URL", "http://localhost:8080"),
		LoginURL:    getenv("STOREFRONT_LOGIN_URL", "/login"),
		CheckoutURL: getenv("STOREFRONT_CHECKOUT_URL", "/checkout"),
		StoragePath: getenv("CART_STORAGE_PATH", "storefront-cart.db"),
		Port:        getenv("PORT", "8080"),
		DatabaseURL: databaseURL(),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		AdminAPIKey: os.Getenv("ADMIN_API_KEY"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.HTTPTimeout, err = duration("CART_HTTP_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.TokenTTL, err = duration("TOKEN_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// duration accepts Go durations ("15s") or plain seconds ("15").
func duration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

// databaseURL prefers DATABASE_URL and falls back to the DB_* pieces.
// Empty means no database is configured.
func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"), getenv("DB_PORT", "5432"),
	)
}
