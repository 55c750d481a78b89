package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorMatchesOnCode(t *testing.T) {
	t.Parallel()

	err := ErrCredentialValidationFailed.WithDetails("CREDENTIAL_TOO_SHORT", "CREDENTIAL_MISSING_DIGIT")
	wrapped := fmt.Errorf("create credential: %w", err)

	require.ErrorIs(t, wrapped, ErrCredentialValidationFailed)
	require.NotErrorIs(t, wrapped, ErrInvalidRequest)
	require.Equal(t, KindValidation, KindOf(wrapped))
	require.Contains(t, err.Error(), "CREDENTIAL_MISSING_DIGIT")

	// The sentinel itself is never mutated.
	require.Empty(t, ErrCredentialValidationFailed.Details)
}

func TestErrorWrapKeepsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("cipher: message authentication failed")
	err := ErrEncryption.Wrap(cause)

	require.ErrorIs(t, err, ErrEncryption)
	require.ErrorIs(t, err, cause)
	require.NotContains(t, err.Error(), "cipher")
	require.Equal(t, ErrorKind(""), KindOf(cause))
}
