// Package twelvedata provides a client for the Twelve Data stock market API.
package twelvedata

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds configuration for the Twelve Data API client.
type Config struct {
	TwelveDataAPIKey string        `env:"API_KEY"`                                           // API key for authentication
	BaseURL          string        `env:"BASE_URL" envDefault:"https://api.twelvedata.com"` // Base URL for the API
	Timeout          time.Duration `env:"TIMEOUT" envDefault:"10s"`                         // HTTP request timeout
	OutputSize       int           `env:"OUTPUT_SIZE" envDefault:"5000"`                    // Maximum rows requested per call
	RateLimit        int           `env:"RATE_LIMIT" envDefault:"8"`                        // Calls allowed per minute, 0 disables throttling
}

// LoadConfig loads Twelve Data configuration from TWELVE_DATA_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "TWELVE_DATA_"}); err != nil {
		return Config{}, fmt.Errorf("load twelvedata config: %w", err)
	}
	return cfg, nil
}
