package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/kevin07696/paybox-client/internal/config"
	"github.com/kevin07696/paybox-client/internal/secrets"
	"github.com/kevin07696/paybox-client/ports"
)

// initSecretManager picks the backend holding the Paybox CLE key.
// Supports:
//   - AWS Secrets Manager: PAYBOX_SECRET_BACKEND=aws and AWS_REGION
//   - HashiCorp Vault: PAYBOX_SECRET_BACKEND=vault, VAULT_ADDR and VAULT_TOKEN
//   - Environment variables (development): default
func initSecretManager(ctx context.Context, cfg *config.Config, logger *zap.Logger) ports.SecretManager {
	switch cfg.Secrets.Backend {
	case "aws":
		return initAWSSecretManager(ctx, logger)
	case "vault":
		return initVaultSecretManager(logger)
	case "local":
		return secrets.NewLocalSecretManager(logger)
	default:
		logger.Warn("Unknown PAYBOX_SECRET_BACKEND, falling back to local",
			zap.String("backend", cfg.Secrets.Backend),
		)
		return secrets.NewLocalSecretManager(logger)
	}
}

func initAWSSecretManager(ctx context.Context, logger *zap.Logger) ports.SecretManager {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		logger.Fatal("AWS_REGION environment variable is required when PAYBOX_SECRET_BACKEND=aws")
	}

	awsCfg := secrets.DefaultAWSConfig(region)
	awsCfg.Profile = os.Getenv("AWS_PROFILE")

	sm, err := secrets.NewAWSSecretsManager(ctx, awsCfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize AWS Secrets Manager",
			zap.Error(err),
			zap.String("region", region),
		)
	}
	return sm
}

func initVaultSecretManager(logger *zap.Logger) ports.SecretManager {
	addr := os.Getenv("VAULT_ADDR")
	token := os.Getenv("VAULT_TOKEN")
	if addr == "" || token == "" {
		logger.Fatal("VAULT_ADDR and VAULT_TOKEN are required when PAYBOX_SECRET_BACKEND=vault")
	}

	vaultCfg := secrets.DefaultVaultConfig(addr, token)
	vaultCfg.Namespace = os.Getenv("VAULT_NAMESPACE")

	sm, err := secrets.NewVaultSecretManager(vaultCfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize Vault secret manager",
			zap.Error(err),
			zap.String("address", addr),
		)
	}
	return sm
}
