package paybox

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func failingCall() error { return errBoom }
func okCall() error      { return nil }

func TestCircuitBreakerOpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{MaxFailures: 3, Cooldown: time.Minute})

	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cb.Call(failingCall), errBoom)
	}
	assert.Equal(t, StateOpen, cb.State())

	require.ErrorIs(t, cb.Call(okCall), ErrCircuitOpen)
}

func TestCircuitBreakerSuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{MaxFailures: 3, Cooldown: time.Minute})

	require.ErrorIs(t, cb.Call(failingCall), errBoom)
	require.ErrorIs(t, cb.Call(failingCall), errBoom)
	require.NoError(t, cb.Call(okCall))
	require.ErrorIs(t, cb.Call(failingCall), errBoom)
	require.ErrorIs(t, cb.Call(failingCall), errBoom)

	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreakerHalfOpenProbe(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{MaxFailures: 1, Cooldown: 10 * time.Millisecond})

	require.ErrorIs(t, cb.Call(failingCall), errBoom)
	require.Equal(t, StateOpen, cb.State())

	time.Sleep(20 * time.Millisecond)

	// First probe succeeds and the circuit closes again.
	require.NoError(t, cb.Call(okCall))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreakerFailedProbeReopens(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{MaxFailures: 1, Cooldown: 10 * time.Millisecond})

	require.ErrorIs(t, cb.Call(failingCall), errBoom)
	time.Sleep(20 * time.Millisecond)

	require.ErrorIs(t, cb.Call(failingCall), errBoom)
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", CircuitState(42).String())
}
