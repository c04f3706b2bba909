package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorizationTokenSplit(t *testing.T) {
	token := AuthorizationToken("00000369250000051725")

	assert.True(t, token.Valid())
	assert.Equal(t, "0000036925", token.CallNumber())
	assert.Equal(t, "0000051725", token.TransactionNumber())
}

func TestAuthorizationTokenInvalid(t *testing.T) {
	for _, token := range []AuthorizationToken{"", "123", "0000036925"} {
		assert.False(t, token.Valid(), "token %q", token)
		assert.Empty(t, token.CallNumber())
		assert.Empty(t, token.TransactionNumber())
	}
}

func TestSubscriptionHandleValidate(t *testing.T) {
	assert.NoError(t, SubscriptionHandle{SubscriptionID: "sub", OrderID: "1"}.Validate())
	assert.Error(t, SubscriptionHandle{OrderID: "1"}.Validate())
	assert.Error(t, SubscriptionHandle{SubscriptionID: "sub"}.Validate())
}
