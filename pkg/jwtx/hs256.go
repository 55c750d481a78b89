package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const minSecretLength = 32

// HS256 signs and verifies service tokens with a shared secret. Callers of
// Next Step are internal services, so a symmetric key is enough.
type HS256 struct {
	secret []byte
	issuer string
	leeway time.Duration
	now    func() time.Time
}

// NewHS256 returns a signer/verifier for the shared secret. An empty issuer
// disables the issuer check.
func NewHS256(secret []byte, issuer string) (*HS256, error) {
	if len(secret) < minSecretLength {
		return nil, ErrWeakSecret
	}
	return &HS256{
		secret: secret,
		issuer: issuer,
		leeway: 30 * time.Second,
		now:    time.Now,
	}, nil
}

// Sign produces a compact JWT for the claims.
func (h *HS256) Sign(c Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(h.secret)
}

// Verify implements Verifier.
func (h *HS256) Verify(token string) (Claims, error) {
	var claims Claims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	_, err := parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return h.secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenMalformed):
		return Claims{}, ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return Claims{}, ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return Claims{}, ErrAlgMismatch
	default:
		return Claims{}, err
	}

	if err := claims.ValidateIssuer(h.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiryWithLeeway(h.now().UTC(), h.leeway); err != nil {
		return Claims{}, err
	}
	return claims, nil
}
