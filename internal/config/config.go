package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/kevin07696/paybox-client/paybox"
	"github.com/kevin07696/paybox-client/ports"
)

// Config holds gateway construction settings loaded from the
// environment.
type Config struct {
	Gateway paybox.Config
	Logger  LoggerConfig
	Secrets SecretsConfig
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// SecretsConfig selects where the Paybox CLE key comes from. When Path
// is set the key is resolved through a secret manager instead of
// PAYBOX_KEY.
type SecretsConfig struct {
	Backend string // aws, vault, or local
	Path    string // backend-specific secret path
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	site, rank := paybox.SplitLogin(getEnv("PAYBOX_LOGIN", ""))

	cfg := &Config{
		Gateway: paybox.Config{
			Site:              getEnv("PAYBOX_SITE", site),
			Rank:              getEnv("PAYBOX_RANK", rank),
			Key:               getEnv("PAYBOX_KEY", ""),
			Endpoint:          getEnv("PAYBOX_ENDPOINT", paybox.ProductionURL),
			BackupEndpoint:    getEnv("PAYBOX_BACKUP_ENDPOINT", paybox.BackupURL),
			Currency:          getEnv("PAYBOX_CURRENCY", "EUR"),
			Activity:          getEnv("PAYBOX_ACTIVITY", ""),
			Timeout:           time.Duration(getEnvAsInt("PAYBOX_TIMEOUT", 30)) * time.Second,
			RequestsPerSecond: getEnvAsFloat("PAYBOX_RATE_LIMIT", 0),
			Burst:             getEnvAsInt("PAYBOX_RATE_BURST", 1),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
		Secrets: SecretsConfig{
			Backend: getEnv("PAYBOX_SECRET_BACKEND", "local"),
			Path:    getEnv("PAYBOX_KEY_SECRET_PATH", ""),
		},
	}

	if cfg.Gateway.Site == "" {
		return nil, fmt.Errorf("PAYBOX_SITE (or PAYBOX_LOGIN) is required")
	}
	if cfg.Gateway.Rank == "" {
		return nil, fmt.Errorf("PAYBOX_RANK (or PAYBOX_LOGIN) is required")
	}
	if cfg.Gateway.Key == "" && cfg.Secrets.Path == "" {
		return nil, fmt.Errorf("PAYBOX_KEY or PAYBOX_KEY_SECRET_PATH is required")
	}

	return cfg, nil
}

// ResolveKey fills Gateway.Key from the secret manager when the
// environment did not provide it directly.
func (c *Config) ResolveKey(ctx context.Context, manager ports.SecretManager) error {
	if c.Gateway.Key != "" || c.Secrets.Path == "" {
		return nil
	}
	secret, err := manager.GetSecret(ctx, c.Secrets.Path)
	if err != nil {
		return fmt.Errorf("resolving Paybox key from %s: %w", c.Secrets.Backend, err)
	}
	c.Gateway.Key = secret.Value
	return nil
}

// getEnv retrieves an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as integer with a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat retrieves an environment variable as float with a default value
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as boolean with a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
