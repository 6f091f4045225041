// Package auth mints the short-lived service bearer token attached to
// outbound calls when a signing key is configured.
package auth

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource issues HS256 service tokens, reusing one until it nears expiry.
type TokenSource struct {
	key    []byte
	issuer string
	ttl    time.Duration

	mu      sync.Mutex
	current string
	expires time.Time
}

func NewTokenSource(signingKey, issuer string, ttl time.Duration) *TokenSource {
	return &TokenSource{key: []byte(signingKey), issuer: issuer, ttl: ttl}
}

// Token returns a valid service token, minting a fresh one when the cached
// token is within a minute of expiry.
func (s *TokenSource) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if s.current != "" && now.Before(s.expires.Add(-time.Minute)) {
		return s.current, nil
	}

	expires := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign service token: %w", err)
	}
	s.current = signed
	s.expires = expires
	return signed, nil
}
