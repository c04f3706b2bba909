package secrets

import (
	"context"
	"testing"
	"time"

	"github.com/kevin07696/paybox-client/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalSecretManager(t *testing.T) {
	t.Setenv("PAYBOX_TEST_CLE", "1999888I")

	manager := NewLocalSecretManager(zap.NewNop())

	secret, err := manager.GetSecret(context.Background(), "PAYBOX_TEST_CLE")
	require.NoError(t, err)
	assert.Equal(t, "1999888I", secret.Value)

	_, err = manager.GetSecret(context.Background(), "PAYBOX_TEST_MISSING")
	require.Error(t, err)
}

func TestSecretCacheTTL(t *testing.T) {
	secret := &ports.Secret{Value: "1999888I"}

	cache := newSecretCache(true, time.Minute)
	cache.put("k", secret)
	assert.Equal(t, secret, cache.get("k"))
	assert.Nil(t, cache.get("other"))

	expired := newSecretCache(true, -time.Second)
	expired.put("k", secret)
	assert.Nil(t, expired.get("k"))

	disabled := newSecretCache(false, time.Minute)
	disabled.put("k", secret)
	assert.Nil(t, disabled.get("k"))
}
