package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL mirrors the auth service's fixed 24 hour JWT lifetime.
const DefaultTokenTTL = 24 * time.Hour

// tokenTTL derives the transport lifetime from the token's exp claim. The
// signature is deliberately not verified: the client never holds the signing
// key, and the remote validation endpoint is the authority on token
// validity. Opaque or expired tokens fall back to the fixed lifetime.
func tokenTTL(token string, fallback time.Duration) time.Duration {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fallback
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback
	}

	ttl := time.Until(exp.Time)
	if ttl <= 0 {
		return fallback
	}
	return ttl
}
