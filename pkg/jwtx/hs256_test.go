package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/nextstep/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte(strings.Repeat("s", 32))

func TestHS256_SignAndVerify(t *testing.T) {
	h, err := jwtx.NewHS256(testSecret, "nextstep")
	require.NoError(t, err)

	claims := jwtx.NewServiceClaims("webflow", []string{jwtx.ScopeAuth}, time.Minute, "nextstep", time.Now())
	token, err := h.Sign(claims)
	require.NoError(t, err)

	got, err := h.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "webflow", got.Subject)
	require.True(t, got.HasScope(jwtx.ScopeAuth))
	require.False(t, got.HasScope(jwtx.ScopeAdmin))
}

func TestHS256_Rejects(t *testing.T) {
	h, err := jwtx.NewHS256(testSecret, "nextstep")
	require.NoError(t, err)

	t.Run("weak secret", func(t *testing.T) {
		_, err := jwtx.NewHS256([]byte("short"), "")
		require.ErrorIs(t, err, jwtx.ErrWeakSecret)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := h.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := jwtx.NewHS256([]byte(strings.Repeat("x", 32)), "nextstep")
		require.NoError(t, err)
		token, err := other.Sign(jwtx.NewServiceClaims("svc", nil, time.Minute, "nextstep", time.Now()))
		require.NoError(t, err)

		_, err = h.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := h.Sign(jwtx.NewServiceClaims("svc", nil, time.Minute, "someone-else", time.Now()))
		require.NoError(t, err)

		_, err = h.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := h.Sign(jwtx.NewServiceClaims("svc", nil, time.Minute, "nextstep", time.Now().Add(-time.Hour)))
		require.NoError(t, err)

		_, err = h.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := jwtx.NewServiceClaims("svc", nil, time.Minute, "nextstep", time.Now())
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = h.Verify(token)
		require.Error(t, err)
	})
}
