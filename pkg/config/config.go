package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the dashboard client
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Dashboard server
	Port string
	Env  string // development, staging, production

	// Backend REST API
	Backend BackendConfig

	// Dashboard behaviour
	DefaultHoldingsCount string
	RefreshSchedule      string // cron expression, empty = disabled

	// Logging
	LogLevel  string
	LogFormat string
}

// BackendConfig holds the ETF backend connection settings
type BackendConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 = unlimited
	RateBurst int
}

// HoldingsCounts lists the accepted holdings-count selector values
var HoldingsCounts = []string{"5", "10", "20", "50", "all"}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		Backend: BackendConfig{
			BaseURL:   strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:5000"), "/"),
			Timeout:   getEnvAsDuration("HTTP_TIMEOUT", "30s"),
			RateLimit: getEnvAsFloat("HTTP_RATE_LIMIT", 0),
			RateBurst: getEnvAsInt("HTTP_RATE_BURST", 1),
		},

		DefaultHoldingsCount: getEnv("DEFAULT_HOLDINGS_COUNT", "10"),
		RefreshSchedule:      getEnv("REFRESH_SCHEDULE", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_URL is required")
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BACKEND_URL must be an absolute URL: %q", c.Backend.BaseURL)
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if !IsHoldingsCount(c.DefaultHoldingsCount) {
		return fmt.Errorf("DEFAULT_HOLDINGS_COUNT must be one of: %s", strings.Join(HoldingsCounts, ", "))
	}

	if c.Backend.RateLimit < 0 {
		return fmt.Errorf("HTTP_RATE_LIMIT must not be negative")
	}

	return nil
}

// IsHoldingsCount reports whether v is an accepted holdings-count selector value
func IsHoldingsCount(v string) bool {
	for _, c := range HoldingsCounts {
		if c == v {
			return true
		}
	}
	return false
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
