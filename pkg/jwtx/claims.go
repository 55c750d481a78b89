package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Scopes understood by the Next Step API.
const (
	// ScopeAuth covers operation steps, OTP delivery and credential verification.
	ScopeAuth = "nextstep:auth"
	// ScopeAdmin covers credential administration, counters, users and operation configs.
	ScopeAdmin = "nextstep:admin"
)

// Claims identify a calling service (web flow, admin console) rather than an end user.
type Claims struct {
	jwt.RegisteredClaims

	// Permission scopes, e.g. ["nextstep:auth"]
	Scopes []string `json:"scopes,omitempty"`
}

// NewServiceClaims builds minimally-correct claims for a calling service.
func NewServiceClaims(subject string, scopes []string, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Scopes: scopes,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// HasScope reports whether scope was granted.
func (c *Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiryWithLeeway checks exp and nbf allowing for clock skew.
func (c *Claims) ValidateExpiryWithLeeway(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
