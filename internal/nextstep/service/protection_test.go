package service

import (
	"context"
	"strings"
	"testing"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/aussiebroadwan/nextstep/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestProtectHashes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	protection := env.creds.Protection

	cfg := domain.HashingConfig{
		ID:          idx.New().String(),
		Name:        "fast-argon",
		Algorithm:   domain.HashingArgon2id,
		Memory:      64,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
		Status:      domain.ConfigActive,
		CreatedAt:   env.clock.Now(),
	}
	require.NoError(t, env.store.HashingConfigs().CreateHashingConfig(ctx, cfg))
	def := domain.CredentialDefinition{HashingConfigID: &cfg.ID}

	p, err := protection.Protect(ctx, env.store, def, "secret9value")
	require.NoError(t, err)
	require.NotNil(t, p.HashingConfigID)
	require.Equal(t, cfg.ID, *p.HashingConfigID)
	require.True(t, strings.HasPrefix(p.Value, "$argon2id$"))

	ok, err := protection.Verify("secret9value", p.Value, p.Algorithm, p.HashingConfigID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = protection.Verify("wrong9value", p.Value, p.Algorithm, p.HashingConfigID)
	require.NoError(t, err)
	require.False(t, ok)

	missing := "missing"
	_, err = protection.Protect(ctx, env.store, domain.CredentialDefinition{HashingConfigID: &missing}, "x")
	require.ErrorIs(t, err, ErrHashingConfigNotFound)
}

func TestProtectSeals(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	protection := env.creds.Protection
	def := domain.CredentialDefinition{EncryptionEnabled: true, EncryptionAlgorithm: domain.AESGCM}

	p, err := protection.Protect(ctx, env.store, def, "secret9value")
	require.NoError(t, err)
	require.Equal(t, domain.AESGCM, p.Algorithm)
	require.NotEqual(t, "secret9value", p.Value)

	plain, err := protection.Reveal(p.Value, p.Algorithm)
	require.NoError(t, err)
	require.Equal(t, "secret9value", plain)

	ok, err := protection.Verify("secret9value", p.Value, p.Algorithm, nil)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = (&ProtectionService{}).Protect(ctx, env.store, def, "x")
	require.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = protection.Reveal("not-sealed", domain.AESGCM)
	require.ErrorIs(t, err, ErrEncryption)
}
