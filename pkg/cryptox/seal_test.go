package cryptox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSealer_RoundTrip(t *testing.T) {
	s, err := NewSealer([]byte("master-key"))
	require.NoError(t, err)

	sealed, err := s.SealString("Secret123!")
	require.NoError(t, err)
	require.NotEqual(t, "Secret123!", sealed)

	again, err := s.SealString("Secret123!")
	require.NoError(t, err)
	require.NotEqual(t, sealed, again, "nonce must differ per call")

	plain, err := s.OpenString(sealed)
	require.NoError(t, err)
	require.Equal(t, "Secret123!", plain)
}

func TestSealer_WrongKey(t *testing.T) {
	s1, err := NewSealer([]byte("key-one"))
	require.NoError(t, err)
	s2, err := NewSealer([]byte("key-two"))
	require.NoError(t, err)

	sealed, err := s1.Seal([]byte("data"))
	require.NoError(t, err)

	_, err = s2.Open(sealed)
	require.Error(t, err)

	_, err = s1.Open([]byte("short"))
	require.Error(t, err)

	_, err = NewSealer(nil)
	require.Error(t, err)
}

func TestLoadOrGenerateSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pepper")

	first, err := LoadOrGenerateSecret(path, 32)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := LoadOrGenerateSecret(path, 32)
	require.NoError(t, err)
	require.Equal(t, first, second)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
