package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/stretchr/testify/require"
)

func TestGenerateUsername(t *testing.T) {
	env := newTestEnv(t)
	engine := env.creds.Policy

	username, err := engine.GenerateUsername(context.Background(), env.store, env.def, env.policy)
	require.NoError(t, err)
	require.Len(t, username, 8)
	for _, r := range username {
		require.True(t, r >= '0' && r <= '9', "unexpected rune %q", r)
	}

	bad := env.policy
	bad.UsernameGenAlgorithm = "UNKNOWN"
	_, err = engine.GenerateUsername(context.Background(), env.store, env.def, bad)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestGenerateCredentialValue(t *testing.T) {
	engine := &PolicyEngine{}

	t.Run("pin is digits only", func(t *testing.T) {
		value, err := engine.GenerateCredentialValue(domain.CredentialPolicy{
			CredentialGenAlgorithm: domain.GenerateRandomPIN,
			CredentialGenLength:    6,
		})
		require.NoError(t, err)
		require.Len(t, value, 6)
		require.Regexp(t, `^[0-9]{6}$`, value)
	})

	t.Run("password honours required classes", func(t *testing.T) {
		value, err := engine.GenerateCredentialValue(domain.CredentialPolicy{
			CredentialGenAlgorithm: domain.GenerateRandomPassword,
			CredentialGenLength:    16,
			RequireUppercase:       true,
			RequireDigit:           true,
			RequireSpecial:         true,
		})
		require.NoError(t, err)
		require.Len(t, value, 16)
		require.Regexp(t, `[A-Z]`, value)
		require.Regexp(t, `[0-9]`, value)
	})

	t.Run("zero length is a configuration error", func(t *testing.T) {
		_, err := engine.GenerateCredentialValue(domain.CredentialPolicy{CredentialGenAlgorithm: domain.GenerateRandomPIN})
		require.ErrorIs(t, err, ErrInvalidConfiguration)
	})
}

func TestValidateCredentialValue(t *testing.T) {
	env := newTestEnv(t)
	engine := env.creds.Policy
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		value    string
		want     []domain.ValidationFailure
	}{
		{"valid", "john", "correct9horse", nil},
		{"empty", "", "", []domain.ValidationFailure{domain.CredentialEmpty}},
		{"short without digit", "", "abc", []domain.ValidationFailure{domain.CredentialTooShort, domain.CredentialMissingDigit}},
		{"contains username", "John.Doe", "xjohn.doe1x", []domain.ValidationFailure{domain.CredentialUsernameIncluded}},
		{"prohibited ignores case", "", "PASSWORD1", []domain.ValidationFailure{domain.CredentialProhibited}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.ValidateCredentialValue(ctx, env.store, env.def, env.policy,
				CredentialCandidate{UserID: testUserID, Username: tt.username, Value: tt.value}, true)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestValidateCredentialUsername(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createCredential(t, "taken.name", "first9value")

	got, err := env.creds.Validate(ctx, ValidateCredentialRequest{
		UserID:         testUserID,
		CredentialName: testCredential,
		Username:       "AB",
		ValidationMode: domain.ValidateUsername,
	})
	require.NoError(t, err)
	require.Equal(t, []domain.ValidationFailure{domain.UsernameTooShort, domain.UsernameIllegalCharacters}, got)

	_, err = env.users.CreateUser(ctx, "user-2")
	require.NoError(t, err)
	got, err = env.creds.Validate(ctx, ValidateCredentialRequest{
		UserID:         "user-2",
		CredentialName: testCredential,
		Username:       "taken.name",
		ValidationMode: domain.ValidateUsername,
	})
	require.NoError(t, err)
	require.Equal(t, []domain.ValidationFailure{domain.UsernameAlreadyExists}, got)

	// The owner may keep its own username.
	got, err = env.creds.Validate(ctx, ValidateCredentialRequest{
		UserID:         testUserID,
		CredentialName: testCredential,
		Username:       "taken.name",
		ValidationMode: domain.ValidateUsername,
	})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestValidateCredentialHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createCredential(t, "john", "first9value")

	_, err := env.creds.Update(ctx, UpdateCredentialRequest{
		UserID:         testUserID,
		CredentialName: testCredential,
		Value:          "second9value",
	})
	require.NoError(t, err)

	got, err := env.creds.Validate(ctx, ValidateCredentialRequest{
		UserID:         testUserID,
		CredentialName: testCredential,
		Value:          "first9value",
		ValidationMode: domain.ValidateCredential,
	})
	require.NoError(t, err)
	require.Equal(t, []domain.ValidationFailure{domain.CredentialHistoryCheckFailed}, got)

	_, err = env.creds.Update(ctx, UpdateCredentialRequest{
		UserID:         testUserID,
		CredentialName: testCredential,
		Value:          "first9value",
	})
	require.ErrorIs(t, err, ErrCredentialValidationFailed)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, []string{string(domain.CredentialHistoryCheckFailed)}, svcErr.Details)
}
