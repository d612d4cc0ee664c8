// Package config loads and validates the server configuration.
package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

// Config is the YAML server configuration.
type Config struct {
	// InitialBalance is the cash every new session starts with.
	InitialBalance float64 `yaml:"initial_balance" validate:"gt=0"`
	// Universe is the closed set of tradable tickers.
	Universe []string `yaml:"universe" validate:"required,min=1,dive,required"`
	// BenchmarkSymbol is the reference index for beta.
	BenchmarkSymbol string `yaml:"benchmark_symbol" validate:"required"`
	// RSIWindow is the RSI lookback in bars.
	RSIWindow int `yaml:"rsi_window" validate:"gt=0"`
	// LookbackPeriod selects how much history analytics fetch (1w, 1mo, 3mo, 1y).
	LookbackPeriod string `yaml:"lookback_period" validate:"required,oneof=1w 1mo 3mo 1y"`
	// Provider selects the price feed backend.
	Provider string `yaml:"provider" validate:"required,oneof=static polygon binance"`
	// ListenAddr is the HTTP bind address.
	ListenAddr string `yaml:"listen_addr" validate:"required"`
}

// DefaultConfig returns a config suitable for local demo use.
func DefaultConfig() Config {
	return Config{
		InitialBalance:  10000,
		Universe:        []string{"AAPL", "GOOG", "MSFT", "AMZN", "TSLA"},
		BenchmarkSymbol: "SPY",
		RSIWindow:       14,
		LookbackPeriod:  "3mo",
		Provider:        "static",
		ListenAddr:      ":8080",
	}
}

// Parse unmarshals and validates a YAML config document.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	return cfg, nil
}

// Load reads and parses a config file. A missing path yields defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
	}

	return Parse(data)
}
