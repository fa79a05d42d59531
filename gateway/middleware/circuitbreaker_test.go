package middleware

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerOpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker("state", 3, time.Minute)
	boom := errors.New("backend down")

	for i := 0; i < 3; i++ {
		err := cb.Call(func() error { return boom })
		require.Error(t, err)
	}

	assert.Equal(t, StateOpen, cb.GetState())

	err := cb.Call(func() error {
		t.Fatal("call must not run while circuit is open")
		return nil
	})
	assert.EqualError(t, err, "circuit breaker is open for state")
}

func TestCircuitBreakerRecoversThroughHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker("catalog", 1, 10*time.Millisecond)

	require.Error(t, cb.Call(func() error { return errors.New("boom") }))
	require.Equal(t, StateOpen, cb.GetState())

	time.Sleep(20 * time.Millisecond)

	for i := 0; i < 3; i++ {
		require.NoError(t, cb.Call(func() error { return nil }))
	}

	assert.Equal(t, StateClosed, cb.GetState())
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker("catalog", 1, 10*time.Millisecond)

	require.Error(t, cb.Call(func() error { return errors.New("boom") }))
	time.Sleep(20 * time.Millisecond)

	require.Error(t, cb.Call(func() error { return errors.New("still down") }))

	assert.Equal(t, StateOpen, cb.GetState())
}

func TestCircuitBreakerSuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker("state", 2, time.Minute)

	require.Error(t, cb.Call(func() error { return errors.New("boom") }))
	require.NoError(t, cb.Call(func() error { return nil }))
	require.Error(t, cb.Call(func() error { return errors.New("boom") }))

	assert.Equal(t, StateClosed, cb.GetState())
}

func TestDetermineServiceFromPath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/api/cart", "state"},
		{"/api/cart/items/42", "state"},
		{"/api/favorites", "state"},
		{"/api/session/login", "state"},
		{"/api/products", "catalog"},
		{"/api/categories", "catalog"},
		{"/api/orders", "catalog"},
		{"/api/auth/login", "catalog"},
		{"/health", ""},
		{"/metrics", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, determineServiceFromPath(tc.path), tc.path)
	}
}
