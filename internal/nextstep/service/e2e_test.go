package service

import (
	"strings"
	"testing"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/stretchr/testify/require"
)

func e2eDefinition() domain.CredentialDefinition {
	return domain.CredentialDefinition{
		Name:                              "mobile",
		E2EEncryptionEnabled:              true,
		E2EEncryptionAlgorithm:            "AES",
		E2EEncryptionCipherTransformation: "AES/CBC/PKCS7Padding",
	}
}

func TestE2ERoundTrip(t *testing.T) {
	t.Parallel()
	svc := &E2EService{Key: testE2EKey}
	def := e2eDefinition()

	for _, plain := range []string{"", "1234", "exactly16bytes!!", "a much longer value spanning several blocks"} {
		envelope, err := svc.Encrypt(plain, def)
		require.NoError(t, err)
		require.Len(t, strings.Split(envelope, ":"), 2)

		got, err := svc.Decrypt(envelope, def)
		require.NoError(t, err)
		require.Equal(t, plain, got)
	}
}

func TestE2EUsesFreshIV(t *testing.T) {
	t.Parallel()
	svc := &E2EService{Key: testE2EKey}

	a, err := svc.Encrypt("secret", e2eDefinition())
	require.NoError(t, err)
	b, err := svc.Encrypt("secret", e2eDefinition())
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestE2EDecryptMalformed(t *testing.T) {
	t.Parallel()
	svc := &E2EService{Key: testE2EKey}
	def := e2eDefinition()

	for _, in := range []string{"abc", ":", "abc:def", "AAAAAAAAAAAAAAAAAAAAAA==:AAAA", "a:b:c"} {
		_, err := svc.Decrypt(in, def)
		require.ErrorIs(t, err, ErrInvalidRequest, in)
	}
}

func TestE2EConfiguration(t *testing.T) {
	t.Parallel()
	def := e2eDefinition()

	_, err := (&E2EService{}).Encrypt("x", def)
	require.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = (&E2EService{Key: "c2hvcnQ="}).Encrypt("x", def)
	require.ErrorIs(t, err, ErrInvalidConfiguration)

	bad := def
	bad.E2EEncryptionCipherTransformation = "AES/ECB/NoPadding"
	_, err = (&E2EService{Key: testE2EKey}).Encrypt("x", bad)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestE2EForCredentialType(t *testing.T) {
	t.Parallel()
	svc := &E2EService{Key: testE2EKey}
	def := e2eDefinition()

	out, err := svc.EncryptFor("temp", def, domain.CredentialTemporary)
	require.NoError(t, err)
	require.Equal(t, "temp", out, "temporary credentials are exchanged in clear unless enabled")

	def.E2EEncryptionForTemporaryCredential = true
	out, err = svc.EncryptFor("temp", def, domain.CredentialTemporary)
	require.NoError(t, err)
	require.NotEqual(t, "temp", out)

	disabled := domain.CredentialDefinition{}
	out, err = svc.DecryptFor("plain", disabled, domain.CredentialPermanent)
	require.NoError(t, err)
	require.Equal(t, "plain", out)
}
