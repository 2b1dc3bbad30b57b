package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// CORS describes which web origins may call the gateway.
type CORS struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowCredentials bool
}

// AppConfig is built once at startup and passed down; nothing reads the
// environment at request time.
type AppConfig struct {
	// WeatherAPIKey is the upstream provider credential. Its absence is not
	// fatal at startup so /health can report it truthfully; provider calls
	// fail with a config error instead.
	WeatherAPIKey string

	// WeatherAPIBaseURL overrides the provider API root (used by tests).
	WeatherAPIBaseURL string

	Port string

	// HTTPTimeout bounds single-resource upstream lookups; ForecastTimeout
	// bounds forecast lookups, which carry larger payloads.
	HTTPTimeout     time.Duration
	ForecastTimeout time.Duration

	// ProbeInterval controls how often the upstream reachability probe runs.
	ProbeInterval time.Duration

	CORS CORS
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.WeatherAPIKey = os.Getenv("WEATHER_API_KEY")
	cfg.WeatherAPIBaseURL = os.Getenv("WEATHER_API_BASE_URL")
	cfg.Port = getenvDefault("PORT", "8080")

	httpTimeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = httpTimeout

	forecastTimeout, err := getenvDuration("FORECAST_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	cfg.ForecastTimeout = forecastTimeout

	probeInterval, err := getenvDuration("PROBE_INTERVAL", "15m")
	if err != nil {
		return nil, err
	}
	cfg.ProbeInterval = probeInterval

	cfg.CORS = CORS{
		AllowedOrigins:   splitList(getenvDefault("ALLOWED_ORIGINS", "http://localhost:3000")),
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowCredentials: getenvBool("CORS_ALLOW_CREDENTIALS", true),
	}

	return cfg, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
