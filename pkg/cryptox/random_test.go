package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomString(t *testing.T) {
	for range 10 {
		s, err := RandomString(Digits, 8)
		require.NoError(t, err)
		require.Len(t, s, 8)
		for _, c := range s {
			require.True(t, c >= '0' && c <= '9')
		}
	}

	_, err := RandomString("", 8)
	require.Error(t, err)
}

func TestRandomStringWithClasses(t *testing.T) {
	for range 50 {
		s, err := RandomStringWithClasses(6, Lowercase, Uppercase, Digits, Special)
		require.NoError(t, err)
		require.Len(t, s, 6)
		require.True(t, strings.ContainsAny(s, Lowercase))
		require.True(t, strings.ContainsAny(s, Uppercase))
		require.True(t, strings.ContainsAny(s, Digits))
		require.True(t, strings.ContainsAny(s, Special))
	}

	exact, err := RandomStringWithClasses(2, Digits, Uppercase)
	require.NoError(t, err)
	require.Len(t, exact, 2)

	_, err = RandomStringWithClasses(2, Lowercase, Uppercase, Digits)
	require.Error(t, err)
}
