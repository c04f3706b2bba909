package config

import (
	"context"
	"testing"
	"time"

	"github.com/kevin07696/paybox-client/internal/secrets"
	"github.com/kevin07696/paybox-client/paybox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func clearPayboxEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PAYBOX_LOGIN", "PAYBOX_SITE", "PAYBOX_RANK", "PAYBOX_KEY",
		"PAYBOX_ENDPOINT", "PAYBOX_BACKUP_ENDPOINT", "PAYBOX_CURRENCY",
		"PAYBOX_SECRET_BACKEND", "PAYBOX_KEY_SECRET_PATH",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearPayboxEnv(t)
	t.Setenv("PAYBOX_SITE", "1999888")
	t.Setenv("PAYBOX_RANK", "32")
	t.Setenv("PAYBOX_KEY", "1999888I")
	t.Setenv("PAYBOX_CURRENCY", "USD")
	t.Setenv("PAYBOX_TIMEOUT", "10")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "1999888", cfg.Gateway.Site)
	assert.Equal(t, "32", cfg.Gateway.Rank)
	assert.Equal(t, "1999888I", cfg.Gateway.Key)
	assert.Equal(t, "USD", cfg.Gateway.Currency)
	assert.Equal(t, 10*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, paybox.ProductionURL, cfg.Gateway.Endpoint)
	assert.Equal(t, paybox.BackupURL, cfg.Gateway.BackupEndpoint)
}

func TestLoadFromEnvSplitsCombinedLogin(t *testing.T) {
	clearPayboxEnv(t)
	t.Setenv("PAYBOX_LOGIN", "199988832")
	t.Setenv("PAYBOX_KEY", "1999888I")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "1999888", cfg.Gateway.Site)
	assert.Equal(t, "32", cfg.Gateway.Rank)
}

func TestLoadFromEnvRequiresCredentials(t *testing.T) {
	clearPayboxEnv(t)

	_, err := LoadFromEnv()
	require.Error(t, err)

	t.Setenv("PAYBOX_SITE", "1999888")
	t.Setenv("PAYBOX_RANK", "32")
	_, err = LoadFromEnv()
	require.Error(t, err, "key or secret path is required")
}

func TestResolveKeyFromSecretManager(t *testing.T) {
	clearPayboxEnv(t)
	t.Setenv("PAYBOX_SITE", "1999888")
	t.Setenv("PAYBOX_RANK", "32")
	t.Setenv("PAYBOX_KEY_SECRET_PATH", "PAYBOX_CLE_FOR_TEST")
	t.Setenv("PAYBOX_CLE_FOR_TEST", "1999888I")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	require.Empty(t, cfg.Gateway.Key)

	manager := secrets.NewLocalSecretManager(zap.NewNop())
	require.NoError(t, cfg.ResolveKey(context.Background(), manager))
	assert.Equal(t, "1999888I", cfg.Gateway.Key)
}
