package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig
	Prices PricesConfig
	Engine EngineConfig
	Log    LogConfig
	CORS   CORSConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// PricesConfig holds price dataset configuration
type PricesConfig struct {
	// DataPath is the CSV dataset read on every cache miss.
	DataPath string
	// DBPath, when set, replaces the CSV with the SQLite price store.
	DBPath string
	// SyntheticSeed seeds the fallback generator; 0 seeds from the clock.
	SyntheticSeed uint64
	// ReloadSchedule is a cron spec for periodic cache invalidation; empty disables it.
	ReloadSchedule string
}

// EngineConfig holds simulation engine defaults
type EngineConfig struct {
	Alignment string // "date" or "position"
	Currency  string // ISO 4217 code used for display values
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Pretty bool
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	seed, err := strconv.ParseUint(getEnv("SYNTHETIC_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SYNTHETIC_SEED: %w", err)
	}

	pretty, err := strconv.ParseBool(getEnv("LOG_PRETTY", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_PRETTY: %w", err)
	}

	alignment := strings.ToLower(getEnv("RETURN_ALIGNMENT", "date"))
	if alignment != "date" && alignment != "position" {
		return nil, fmt.Errorf("invalid RETURN_ALIGNMENT %q: must be date or position", alignment)
	}

	currency := strings.ToUpper(getEnv("CURRENCY", "USD"))
	if money.GetCurrency(currency) == nil {
		return nil, fmt.Errorf("invalid CURRENCY %q: not an ISO 4217 code", currency)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Prices: PricesConfig{
			DataPath:       getEnv("PRICE_DATA_PATH", "./dummy_stock_prediction_data_50yrs.csv"),
			DBPath:         getEnv("PRICE_DB_PATH", ""),
			SyntheticSeed:  seed,
			ReloadSchedule: getEnv("PRICE_RELOAD_SCHEDULE", ""),
		},
		Engine: EngineConfig{
			Alignment: alignment,
			Currency:  currency,
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Pretty: pretty,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// Seed returns the synthetic generator seed, drawing one from the clock when unset.
func (p PricesConfig) Seed() uint64 {
	if p.SyntheticSeed == 0 {
		return uint64(time.Now().UnixNano())
	}
	return p.SyntheticSeed
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
