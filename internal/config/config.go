package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds the runtime settings of the auction engine.
type Config struct {
	// Server Settings
	Port string

	// Bidding Settings
	MinIncrement decimal.Decimal // zero keeps the strictly-greater-than rule

	// Sweep Settings
	SweepInterval time.Duration
}

// Load reads configuration from a .env file (if present) and environment
// variables, falling back to defaults.
func Load() (*Config, error) {
	// a missing .env file is fine, env vars still apply
	_ = godotenv.Load()

	cfg := &Config{
		Port:          ":8080",
		SweepInterval: time.Minute,
	}

	if p := os.Getenv("PORT"); p != "" {
		cfg.Port = fmt.Sprintf(":%s", p)
	}

	if inc := os.Getenv("MIN_BID_INCREMENT"); inc != "" {
		d, err := decimal.NewFromString(inc)
		if err != nil || d.IsNegative() {
			return nil, fmt.Errorf("config: invalid MIN_BID_INCREMENT %q", inc)
		}
		cfg.MinIncrement = d
	}

	if iv := os.Getenv("SWEEP_INTERVAL"); iv != "" {
		d, err := time.ParseDuration(iv)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("config: invalid SWEEP_INTERVAL %q", iv)
		}
		cfg.SweepInterval = d
	}

	return cfg, nil
}
