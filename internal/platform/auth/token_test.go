package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_MintsVerifiableHS256(t *testing.T) {
	source := NewTokenSource("secret", "caseflow", time.Hour)

	signed, err := source.Token()
	require.NoError(t, err)

	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(signed, &claims, func(token *jwt.Token) (any, error) {
		require.IsType(t, &jwt.SigningMethodHMAC{}, token.Method)
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "caseflow", claims.Issuer)
	assert.Equal(t, "caseflow", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestToken_ReusedUntilNearExpiry(t *testing.T) {
	source := NewTokenSource("secret", "caseflow", time.Hour)

	first, err := source.Token()
	require.NoError(t, err)
	second, err := source.Token()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestToken_RemintedWhenNearExpiry(t *testing.T) {
	// A 30-second TTL is already inside the one-minute refresh window, so
	// every call mints afresh.
	source := NewTokenSource("secret", "caseflow", 30*time.Second)

	first, err := source.Token()
	require.NoError(t, err)
	require.NotEmpty(t, first)

	source.mu.Lock()
	cachedExpiry := source.expires
	source.mu.Unlock()
	assert.False(t, time.Now().Before(cachedExpiry.Add(-time.Minute)), "cached token is not considered fresh")
}
