package secrets

import (
	"context"
	"fmt"
	"os"

	"github.com/kevin07696/paybox-client/ports"
	"go.uber.org/zap"
)

// localSecretManager resolves secrets from environment variables. For
// development and tests only; production deployments use the AWS or
// Vault backends.
type localSecretManager struct {
	logger *zap.Logger
}

// NewLocalSecretManager creates an environment-variable backed secret
// manager. The path is used directly as the variable name.
func NewLocalSecretManager(logger *zap.Logger) ports.SecretManager {
	return &localSecretManager{logger: logger}
}

func (l *localSecretManager) GetSecret(_ context.Context, path string) (*ports.Secret, error) {
	value := os.Getenv(path)
	if value == "" {
		return nil, fmt.Errorf("environment variable %q is not set", path)
	}
	l.logger.Debug("Secret retrieved from environment", zap.String("path", path))
	return &ports.Secret{Value: value, Version: "env"}, nil
}
