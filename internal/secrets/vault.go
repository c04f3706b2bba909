package secrets

import (
	"context"
	"fmt"
	"time"

	vault "github.com/hashicorp/vault/api"
	"github.com/kevin07696/paybox-client/ports"
	"go.uber.org/zap"
)

// VaultConfig contains configuration for the HashiCorp Vault backend
type VaultConfig struct {
	// Vault server address (e.g., "https://vault.example.com:8200")
	Address string

	// Token for token authentication
	Token string

	// Vault namespace (Vault Enterprise)
	Namespace string

	// Field inside the secret data holding the CLE key (default: "cle")
	Field string

	// Cache TTL
	CacheTTL time.Duration

	// Enable caching
	EnableCache bool
}

// DefaultVaultConfig returns default configuration for the Vault backend
func DefaultVaultConfig(address, token string) *VaultConfig {
	return &VaultConfig{
		Address:     address,
		Token:       token,
		Field:       "cle",
		CacheTTL:    5 * time.Minute,
		EnableCache: true,
	}
}

// vaultSecretManager implements the SecretManager port for Vault KV v2.
type vaultSecretManager struct {
	client *vault.Client
	config *VaultConfig
	logger *zap.Logger
	cache  *secretCache
}

// NewVaultSecretManager creates a new Vault backend
func NewVaultSecretManager(cfg *VaultConfig, logger *zap.Logger) (ports.SecretManager, error) {
	vaultConfig := vault.DefaultConfig()
	vaultConfig.Address = cfg.Address

	client, err := vault.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}
	if cfg.Namespace != "" {
		client.SetNamespace(cfg.Namespace)
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("vault token is required")
	}
	client.SetToken(cfg.Token)

	logger.Info("Vault backend initialized", zap.String("address", cfg.Address))

	return &vaultSecretManager{
		client: client,
		config: cfg,
		logger: logger,
		cache:  newSecretCache(cfg.EnableCache, cfg.CacheTTL),
	}, nil
}

// GetSecret reads a KV v2 path (e.g. "secret/data/paybox/sites/1999888")
// and returns the configured field of its data.
func (v *vaultSecretManager) GetSecret(ctx context.Context, path string) (*ports.Secret, error) {
	if cached := v.cache.get(path); cached != nil {
		v.logger.Debug("Secret retrieved from cache", zap.String("path", path))
		return cached, nil
	}

	v.logger.Info("Retrieving secret from Vault", zap.String("path", path))

	read, err := v.client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret %q: %w", path, err)
	}
	if read == nil || read.Data == nil {
		return nil, fmt.Errorf("secret %q not found", path)
	}

	// KV v2 nests the payload under "data".
	data := read.Data
	if nested, ok := read.Data["data"].(map[string]interface{}); ok {
		data = nested
	}

	field := v.config.Field
	if field == "" {
		field = "cle"
	}
	value, ok := data[field].(string)
	if !ok || value == "" {
		return nil, fmt.Errorf("secret %q has no %q field", path, field)
	}

	secret := &ports.Secret{Value: value}
	if metadata, ok := read.Data["metadata"].(map[string]interface{}); ok {
		if version, ok := metadata["version"]; ok {
			secret.Version = fmt.Sprintf("%v", version)
		}
	}
	v.cache.put(path, secret)
	return secret, nil
}
